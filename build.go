//go:build ignore

// build.go - PPE build system
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: all, ppe, web, test, clean

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const module = "ppecli"

var (
	distDir = "dist"

	// key = directory under cmd/, value = output binary name
	executables = map[string]string{
		"ppe": "ppe",
		"web": "ppe-web",
	}

	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
)

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	var err error
	switch *target {
	case "all":
		err = buildAll(*verbose)
	case "ppe", "web":
		err = buildExecutable(*target, *verbose)
	case "test":
		err = runTests(*verbose)
	case "clean":
		err = os.RemoveAll(distDir)
	default:
		showHelp()
		os.Exit(1)
	}
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println(colorCyan + "      PPE Export Parity - Build System     " + colorReset)
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println()
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func buildAll(verbose bool) error {
	printInfo("Building all components...")
	for name := range executables {
		if err := buildExecutable(name, verbose); err != nil {
			return err
		}
	}
	return nil
}

// buildExecutable compiles cmd/<name> with version metadata stamped into
// pkg/contracts
func buildExecutable(name string, verbose bool) error {
	output := executables[name]
	if runtime.GOOS == "windows" {
		output += ".exe"
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", distDir, err)
	}
	output = filepath.Join(distDir, output)
	printInfo(fmt.Sprintf("Building %s -> %s", name, output))

	ldflags := []string{
		"-s", "-w",
		fmt.Sprintf("-X %s/pkg/contracts.BuildTime=%s", module, time.Now().UTC().Format(time.RFC3339)),
		fmt.Sprintf("-X %s/pkg/contracts.GitCommit=%s", module, gitCommit()),
	}
	args := []string{"build", "-trimpath", "-ldflags", strings.Join(ldflags, " "), "-o", output, "./cmd/" + name}
	if verbose {
		args = append(args, "-v")
	}
	return run(verbose, "go", args...)
}

func runTests(verbose bool) error {
	printInfo("Running tests...")
	args := []string{"test", "-race", "./..."}
	if verbose {
		args = append(args, "-v")
	}
	return run(true, "go", args...)
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func run(verbose bool, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
	if verbose {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func showHelp() {
	fmt.Println("Usage: go run build.go -target=TARGET [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  all     build every executable into dist/")
	fmt.Println("  ppe     build the command line report")
	fmt.Println("  web     build the HTTP service")
	fmt.Println("  test    run the test suite with the race detector")
	fmt.Println("  clean   remove dist/")
}
