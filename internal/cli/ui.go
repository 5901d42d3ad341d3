package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("36")  // counts, ids, spinner
	colorOK      = lipgloss.Color("35")  // consistent graphs, finished steps
	colorWarn    = lipgloss.Color("220") // skipped ids, dirty state
	colorFail    = lipgloss.Color("167") // failed checks
	colorCommand = lipgloss.Color("75")
	colorText    = lipgloss.Color("255")
	colorGray    = lipgloss.Color("245") // table headers, labels
	colorDim     = lipgloss.Color("240")
)

var (
	// StyleTitle renders graph file names and view titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleNumber renders counts and ids.
	StyleNumber = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleWarning renders skipped ids and TUI notices.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleValue       = lipgloss.NewStyle().Foreground(colorText)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
)

// status is a leading marker for one line of command output.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	statusFail = status{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	statusWarn = status{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) line(msg string) string {
	return s.style.Render(s.icon) + " " + msg
}

func printSuccess(format string, args ...any) {
	fmt.Println(statusOK.line(fmt.Sprintf(format, args...)))
}

func printError(format string, args ...any) {
	fmt.Println(statusFail.line(fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...any) {
	fmt.Println(statusWarn.line(StyleWarning.Render(fmt.Sprintf(format, args...))))
}

func printInfo(format string, args ...any) {
	fmt.Println(statusInfo.line(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path a graph or drawing was written to.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// printValidity reports the result of the adjacency check.
func printValidity(err error) {
	if err != nil {
		printError("Adjacency check failed: %v", err)
		return
	}
	printSuccess("Adjacency consistent")
}

// renderStats formats a graph's size and whether the drawing came from the
// cache, e.g. "12 vertices · 11 edges · cached".
func renderStats(vertexCount, edgeCount int, cached bool) string {
	sep := StyleDim.Render(" · ")
	source := StyleDim.Render("rendered")
	if cached {
		source = statusOK.style.Render("cached")
	}
	return "  " + strings.Join([]string{
		StyleNumber.Render(fmt.Sprint(vertexCount)) + StyleDim.Render(" vertices"),
		StyleNumber.Render(fmt.Sprint(edgeCount)) + StyleDim.Render(" edges"),
		source,
	}, sep)
}

func printStats(vertexCount, edgeCount int, cached bool) {
	fmt.Println(renderStats(vertexCount, edgeCount, cached))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
