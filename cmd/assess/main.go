package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"vaidya/internal/catalog"
	"vaidya/internal/domain"
	"vaidya/internal/repository"
	"vaidya/internal/service"
)

// assess clasifica un intake JSON desde la terminal y, si se pide, guarda el modulo
// de terapia en una base SQLite local.
func main() {
	_ = godotenv.Load()

	logger := zap.NewExample()
	defer logger.Sync()

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("assess", flag.ContinueOnError)
	var (
		variant    = fs.String("variant", string(domain.VariantGeneral), "questionnaire: general | hairfall")
		inputPath  = fs.String("input", "-", "intake JSON file (- for stdin)")
		templateID = fs.String("template", "", "therapy template to instantiate after the assessment")
		clinic     = fs.String("clinic", "", "clinic name for the therapy module")
		date       = fs.String("date", "", "scheduled date for the therapy module")
		hour       = fs.String("time", "", "scheduled time for the therapy module")
		booking    = fs.String("booking", "", "booking id for the therapy module")
		patient    = fs.String("patient", "", "patient id that owns the therapy module")
		dbPath     = fs.String("db", "", "sqlite file to store the module (empty keeps it in memory)")
		catalogDir = fs.String("catalog", "", "therapy catalog YAML (empty uses the embedded one)")
		questions  = fs.Bool("questions", false, "print the questionnaire and exit")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *questions {
		qs, ok := service.Questionnaire(domain.AssessmentVariant(*variant))
		if !ok {
			return fmt.Errorf("unknown variant %q", *variant)
		}
		return printJSON(stdout, service.DescribeQuestions(qs))
	}

	raw, err := readIntake(*inputPath, stdin)
	if err != nil {
		return fmt.Errorf("read intake: %w", err)
	}

	assessments := service.NewAssessmentService(nil, logger)
	switch domain.AssessmentVariant(*variant) {
	case domain.VariantGeneral:
		res, err := assessments.AssessGeneral(ctx, *patient, raw)
		if err != nil {
			return fmt.Errorf("assessment: %w", err)
		}
		if err := printJSON(stdout, res); err != nil {
			return err
		}
	case domain.VariantHairFall:
		res, err := assessments.AssessHairFall(ctx, *patient, raw)
		if err != nil {
			return fmt.Errorf("assessment: %w", err)
		}
		if err := printJSON(stdout, res); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown variant %q", *variant)
	}

	if *templateID == "" {
		return nil
	}

	templates, err := catalog.Load(*catalogDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var repo repository.ModuleRepository = repository.NewMemoryModuleRepository()
	if *dbPath != "" {
		sqliteRepo, err := repository.NewSQLiteModuleRepository(*dbPath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
	}

	modules := service.NewModuleService(service.NewTherapyModuleFactory(templates), repo, logger)
	in := service.CreateModuleInput{
		TemplateID:    *templateID,
		ClinicName:    *clinic,
		ScheduledDate: *date,
		ScheduledTime: *hour,
		PatientID:     *patient,
	}
	if *booking != "" {
		in.BookingID = booking
	}
	module, created, err := modules.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("create module: %w", err)
	}
	if !created {
		logger.Info("module already existed for this booking", zap.String("module_key", module.Key()))
	}
	return printJSON(stdout, module)
}

func readIntake(path string, stdin io.Reader) (map[string]any, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode intake: %w", err)
	}
	return raw, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
