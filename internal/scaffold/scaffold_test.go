package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vergeframework/verge/internal/config"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestNewProject(t *testing.T) {
	root, err := NewProject(ProjectOptions{
		Dir:    t.TempDir(),
		Name:   "myblog",
		Engine: config.EngineSQLite,
		App:    "blog",
	})
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	gomod := readFile(t, filepath.Join(root, "go.mod"))
	if !strings.Contains(gomod, "module myblog\n") {
		t.Errorf("go.mod missing module line:\n%s", gomod)
	}
	if !strings.Contains(gomod, "require github.com/vergeframework/verge") {
		t.Errorf("go.mod missing framework require:\n%s", gomod)
	}

	main := readFile(t, filepath.Join(root, "cmd", "myblog", "main.go"))
	if !strings.Contains(main, `_ "myblog/blog"`) {
		t.Errorf("main.go missing app import:\n%s", main)
	}
	if !strings.Contains(main, "cli.Execute()") {
		t.Errorf("main.go missing CLI wiring:\n%s", main)
	}

	models := readFile(t, filepath.Join(root, "blog", "models.go"))
	if !strings.Contains(models, "package blog\n") {
		t.Errorf("models.go has wrong package:\n%s", models)
	}
	if !strings.Contains(models, `verge.Register("blog", Post)`) {
		t.Errorf("models.go missing registration:\n%s", models)
	}

	for _, name := range []string{".gitignore", ".env.example"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	var settings config.Settings
	if err := yaml.Unmarshal([]byte(readFile(t, filepath.Join(root, "verge.yaml"))), &settings); err != nil {
		t.Fatalf("generated verge.yaml does not parse: %v", err)
	}
	if settings.Database.Engine != config.EngineSQLite {
		t.Errorf("engine = %q, want sqlite", settings.Database.Engine)
	}
	if settings.Database.Name != "myblog.db" {
		t.Errorf("database name = %q, want myblog.db", settings.Database.Name)
	}
	if len(settings.Apps) != 1 || settings.Apps[0] != "blog" {
		t.Errorf("apps = %v, want [blog]", settings.Apps)
	}
}

func TestNewProjectConfigLoads(t *testing.T) {
	// The generated verge.yaml must survive a real configuration load.
	root, err := NewProject(ProjectOptions{
		Dir:    t.TempDir(),
		Name:   "shop",
		Engine: config.EngineMySQL,
		App:    "store",
	})
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	settings, err := config.Load(filepath.Join(root, "verge.yaml"))
	if err != nil {
		t.Fatalf("generated config failed to load: %v", err)
	}
	if settings.Database.Engine != config.EngineMySQL {
		t.Errorf("engine = %q, want mysql", settings.Database.Engine)
	}
	if settings.Database.Port != 3306 {
		t.Errorf("port = %d, want 3306", settings.Database.Port)
	}
}

func TestNewProjectWithoutApp(t *testing.T) {
	root, err := NewProject(ProjectOptions{
		Dir:  t.TempDir(),
		Name: "bare",
	})
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	main := readFile(t, filepath.Join(root, "cmd", "bare", "main.go"))
	if !strings.Contains(main, "// Register applications here") {
		t.Errorf("main.go missing registration hint:\n%s", main)
	}

	var settings config.Settings
	if err := yaml.Unmarshal([]byte(readFile(t, filepath.Join(root, "verge.yaml"))), &settings); err != nil {
		t.Fatalf("generated verge.yaml does not parse: %v", err)
	}
	if len(settings.Apps) != 0 {
		t.Errorf("apps = %v, want empty", settings.Apps)
	}
	if settings.Database.Engine != config.EnginePostgres {
		t.Errorf("default engine = %q, want postgres", settings.Database.Engine)
	}
}

func TestNewProjectCustomModule(t *testing.T) {
	root, err := NewProject(ProjectOptions{
		Dir:    t.TempDir(),
		Name:   "myblog",
		Module: "example.com/team/myblog",
		App:    "blog",
	})
	if err != nil {
		t.Fatalf("NewProject failed: %v", err)
	}

	gomod := readFile(t, filepath.Join(root, "go.mod"))
	if !strings.Contains(gomod, "module example.com/team/myblog\n") {
		t.Errorf("go.mod missing custom module path:\n%s", gomod)
	}
	main := readFile(t, filepath.Join(root, "cmd", "myblog", "main.go"))
	if !strings.Contains(main, `_ "example.com/team/myblog/blog"`) {
		t.Errorf("main.go app import must use module path:\n%s", main)
	}
}

func TestNewProjectRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "taken"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := NewProject(ProjectOptions{Dir: dir, Name: "taken"})
	if !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
}

func TestNewProjectRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "9lives", "has space", "-lead", "dot.name"} {
		_, err := NewProject(ProjectOptions{Dir: t.TempDir(), Name: name})
		if !errors.Is(err, ErrBadName) {
			t.Errorf("name %q: expected ErrBadName, got %v", name, err)
		}
	}
}

func TestNewProjectRejectsUnknownEngine(t *testing.T) {
	_, err := NewProject(ProjectOptions{Dir: t.TempDir(), Name: "proj", Engine: "oracle"})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid, got %v", err)
	}
}

func TestNewApp(t *testing.T) {
	dir := t.TempDir()

	appDir, err := NewApp(dir, "shop")
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	models := readFile(t, filepath.Join(appDir, "models.go"))
	if !strings.Contains(models, "package shop\n") {
		t.Errorf("models.go has wrong package:\n%s", models)
	}
	if !strings.Contains(models, `verge.Register("shop", Post)`) {
		t.Errorf("models.go missing registration:\n%s", models)
	}

	// A second scaffold of the same app must refuse.
	if _, err := NewApp(dir, "shop"); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
}

func TestNewAppRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "Blog", "9shop", "has-dash", "has space"} {
		_, err := NewApp(t.TempDir(), name)
		if !errors.Is(err, ErrBadName) {
			t.Errorf("name %q: expected ErrBadName, got %v", name, err)
		}
	}
}
