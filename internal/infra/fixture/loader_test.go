package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"quiz-manager/internal/app"
)

const validFixtures = `
quizzes:
  - title: Math Quiz
    questions:
      - text: What is 2+2?
        options:
          - id: a
            text: "3"
          - id: b
            text: "4"
        correctOptionId: b
  - title: Empty Quiz
`

func TestParseAndApply(t *testing.T) {
	path := writeFixture(t, validFixtures)

	f, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(f.Quizzes))
	}

	ctx := context.Background()
	service := app.NewQuizService()
	if err := f.Apply(ctx, service); err != nil {
		t.Fatalf("apply: %v", err)
	}

	quizzes := service.ListQuizzes(ctx)
	if len(quizzes) != 2 || quizzes[0].Title != "Math Quiz" {
		t.Fatalf("unexpected quizzes: %+v", quizzes)
	}
	views, err := service.Questions(ctx, quizzes[0].ID)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(views) != 1 || views[0].Text != "What is 2+2?" {
		t.Fatalf("unexpected questions: %+v", views)
	}
}

func TestParseRejectsInvalidFixtures(t *testing.T) {
	cases := map[string]string{
		"missing title": `
quizzes:
  - questions: []
`,
		"single option": `
quizzes:
  - title: Bad
    questions:
      - text: Q
        options:
          - id: a
            text: only
        correctOptionId: a
`,
		"duplicate option ids": `
quizzes:
  - title: Bad
    questions:
      - text: Q
        options:
          - id: a
            text: one
          - id: a
            text: two
        correctOptionId: a
`,
		"missing correctOptionId": `
quizzes:
  - title: Bad
    questions:
      - text: Q
        options:
          - id: a
            text: one
          - id: b
            text: two
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(writeFixture(t, content)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestApplyRunsServiceChecks(t *testing.T) {
	// correctOptionId passes shape validation but is not among the options,
	// so the service itself must reject it during Apply.
	path := writeFixture(t, `
quizzes:
  - title: Bad
    questions:
      - text: Q
        options:
          - id: a
            text: one
          - id: b
            text: two
        correctOptionId: z
`)
	f, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := f.Apply(context.Background(), app.NewQuizService()); err == nil {
		t.Fatal("expected apply to fail on bad correct option")
	}
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
