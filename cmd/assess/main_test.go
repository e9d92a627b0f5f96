package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"vaidya/internal/domain"
	"vaidya/internal/repository"
)

func TestRun_GeneralFromStdin(t *testing.T) {
	var out bytes.Buffer
	stdin := strings.NewReader(`{"age": "22", "gender": "Female", "symptoms": ["anxiety", "dry skin"], "stressLevel": 4}`)

	if err := run(context.Background(), []string{"-variant", "general"}, stdin, &out, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var res struct {
		Profile domain.ConstitutionProfile `json:"profile"`
	}
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if res.Profile.Vata != 90 || res.Profile.Kapha != 10 || res.Profile.Dominant != domain.Vata {
		t.Fatalf("unexpected profile %+v", res.Profile)
	}
}

func TestRun_StoresModuleInSQLite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "intake.json")
	if err := os.WriteFile(input, []byte(`{"age": 40, "gender": "male", "stressLevel": 2}`), 0o600); err != nil {
		t.Fatalf("write intake: %v", err)
	}
	dbPath := filepath.Join(dir, "modules.db")

	args := []string{
		"-input", input,
		"-template", "vata-basti",
		"-clinic", "Sukha Clinic",
		"-booking", "bk-cli",
		"-patient", "patient-9",
		"-db", dbPath,
	}
	var out bytes.Buffer
	if err := run(context.Background(), args, strings.NewReader(""), &out, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}

	// run ya cerro la base: reabrirla confirma que el modulo quedo guardado.
	repo, err := repository.NewSQLiteModuleRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer repo.Close()

	m, err := repo.Get(context.Background(), "bk-cli")
	if err != nil {
		t.Fatalf("get module: %v", err)
	}
	if m.TemplateID != "vata-basti" || m.PatientID != "patient-9" || m.OverallProgress != 0 {
		t.Fatalf("unexpected module %+v", m)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		check func(error) bool
	}{
		{
			name:  "invalid intake",
			args:  []string{"-variant", "general"},
			stdin: `{"gender": "male", "stressLevel": 2}`,
			check: func(err error) bool {
				var invalid *domain.InvalidIntakeError
				return errors.As(err, &invalid) && invalid.Field == "age"
			},
		},
		{
			name:  "unknown variant",
			args:  []string{"-variant", "sleep"},
			stdin: `{}`,
			check: func(err error) bool { return err != nil && strings.Contains(err.Error(), "unknown variant") },
		},
		{
			name:  "malformed json",
			args:  nil,
			stdin: `{not json`,
			check: func(err error) bool { return err != nil && strings.Contains(err.Error(), "read intake") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, strings.NewReader(tt.stdin), &out, zap.NewNop())
			if !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestRun_PrintsQuestionnaire(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-questions", "-variant", "hairfall"}, nil, &out, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}
	var questions []map[string]any
	if err := json.Unmarshal(out.Bytes(), &questions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(questions) == 0 {
		t.Fatalf("expected hairfall questions")
	}
}
