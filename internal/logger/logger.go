package logger

import (
	"fmt"
	"os"
	"time"
)

// ANSI colors. Disabled when NO_COLOR is set or stdout is redirected to a file
// the user explicitly asked to keep plain.
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func useColor() bool {
	return os.Getenv("NO_COLOR") == ""
}

func paint(color, s string) string {
	if !useColor() {
		return s
	}
	return color + s + colorReset
}

func stamp() string {
	return time.Now().Format("15:04:05")
}

func line(color, symbol, tag, msg string) {
	fmt.Printf("%s %s %s %s\n",
		paint(colorGray, stamp()),
		paint(color, symbol),
		paint(colorBold, fmt.Sprintf("[%s]", tag)),
		msg)
}

// Info logs an informational message with a component tag.
func Info(tag, msg string) {
	line(colorCyan, "•", tag, msg)
}

// Success logs a completed-step message.
func Success(tag, msg string) {
	line(colorGreen, "✓", tag, msg)
}

// Warn logs a recoverable problem.
func Warn(tag, msg string) {
	line(colorYellow, "!", tag, msg)
}

// Error logs a failure.
func Error(tag, msg string) {
	line(colorRed, "✗", tag, msg)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(paint(colorCyan, colorBold+`  _____ _____     _____         _                 `))
	fmt.Println(paint(colorCyan, colorBold+` |  __|_   _|___ |  _  |___ ___| |_ _ ___ ___ ___ `))
	fmt.Println(paint(colorCyan, colorBold+` | |_ | | | |___||     |   | .'| | | |- _| -_|  _|`))
	fmt.Println(paint(colorCyan, colorBold+` |____| |_|      |__|__|_|_|__,|_|_  |___|___|_|  `))
	fmt.Println(paint(colorCyan, colorBold+`                                 |___|            `))
	fmt.Printf("  %s\n\n", paint(colorGray, "market analyzer "+version))
}

// Section prints a section header for grouped statistics.
func Section(title string) {
	fmt.Printf("\n%s\n", paint(colorBold, "── "+title+" ──"))
}

// Stats prints a single key/value statistic line.
func Stats(key string, value interface{}) {
	fmt.Printf("   %s %v\n", paint(colorGray, key+":"), value)
}

// Server logs the listen address once the HTTP server is up.
func Server(addr string) {
	Success("Server", fmt.Sprintf("Listening on http://%s", addr))
}
