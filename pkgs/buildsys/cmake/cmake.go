package cmake

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/rtchallenge/installdeps/pkgs/buildsys"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake wraps common CMake build steps with chainable configuration.
type CMake struct {
	SourceDir  string
	buildDir   string
	installDir string
	generator  string
	arch       string
	buildType  string
	Defines    map[string]defineValue
	env        map[string]string
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New creates a CMake helper for the project in sourceDir.
// The build tree is sourceDir/build.
func New(sourceDir string) *CMake {
	return &CMake{
		SourceDir: sourceDir,
		buildDir:  filepath.Join(sourceDir, "build"),
		Defines:   map[string]defineValue{},
		env:       map[string]string{},
	}
}

// PlatformArch returns the generator platform passed with -A on goos.
// Only Visual Studio generators on Windows need one.
func PlatformArch(goos string) string {
	if goos == "windows" {
		return "x64"
	}
	return ""
}

func (c *CMake) Source(dir string) {
	c.SourceDir = dir
	c.buildDir = filepath.Join(dir, "build")
}

func (c *CMake) InstallDir(dir string) {
	c.installDir = dir
}

// BuildDir returns the CMake binary directory.
func (c *CMake) BuildDir() string {
	return c.buildDir
}

func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

// Arch sets the generator platform (-A). Empty means none.
func (c *CMake) Arch(name string) *CMake {
	c.arch = name
	return c
}

func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

func (c *CMake) Define(key, value string) *CMake {
	if c.Defines == nil {
		c.Defines = map[string]defineValue{}
	}
	c.Defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

func (c *CMake) DefineBool(key string, value bool) *CMake {
	if c.Defines == nil {
		c.Defines = map[string]defineValue{}
	}
	if value {
		c.Defines[key] = defineValue{value: "ON", typeName: "BOOL"}
		return c
	}
	c.Defines[key] = defineValue{value: "OFF", typeName: "BOOL"}
	return c
}

// Env sets an environment variable for the cmake processes only.
func (c *CMake) Env(key, value string) *CMake {
	if c.env == nil {
		c.env = map[string]string{}
	}
	c.env[key] = value
	return c
}

func (c *CMake) Configure(args ...string) error {
	if err := os.MkdirAll(c.buildDir, 0o755); err != nil {
		return err
	}
	return run("cmake", c.configureArgs(args...), c.env)
}

func (c *CMake) configureArgs(args ...string) []string {
	cmakeArgs := []string{"-S", c.SourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.arch != "" {
		cmakeArgs = append(cmakeArgs, "-A", c.arch)
	}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	return append(cmakeArgs, args...)
}

func (c *CMake) Build(args ...string) error {
	return run("cmake", c.buildArgs(args...), c.env)
}

func (c *CMake) buildArgs(args ...string) []string {
	cmdArgs := []string{"--build", c.buildDir}
	if c.buildType != "" {
		cmdArgs = append(cmdArgs, "--config", c.buildType)
	}
	return append(cmdArgs, args...)
}

func (c *CMake) Install(args ...string) error {
	cmdArgs := []string{"--install", c.buildDir}
	if c.installDir != "" {
		cmdArgs = append(cmdArgs, "--prefix", c.installDir)
	}
	cmdArgs = append(cmdArgs, args...)
	return run("cmake", cmdArgs, c.env)
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) definesArgs() []string {
	if len(c.Defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Defines))
	for k := range c.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := c.Defines[k]
		if def.typeName != "" {
			args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
			continue
		}
		args = append(args, "-D"+k+"="+def.value)
	}
	return args
}

func run(bin string, args []string, env map[string]string) error {
	log.Debugf("run: %s %s", bin, strings.Join(args, " "))
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), env)
	}
	return cmd.Run()
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
