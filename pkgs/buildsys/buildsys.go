package buildsys

// BuildSystem captures shared capabilities of native build helpers.
// It keeps the common configure/build/install lifecycle; implementations add their own extras.
type BuildSystem interface {
	// Basic paths.
	Source(dir string)
	InstallDir(dir string)

	// Lifecycle.
	Configure(args ...string) error
	Build(args ...string) error
	Install(args ...string) error

	// Where artifacts land.
	OutputDir() string
}
