package themis

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/themis"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

var (
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	labelStyle   = color.New(color.Bold)
	faintStyle   = color.New(color.Faint)
)

// outputFormat is the value of --output.
type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func (o *outputFormat) String() string {
	return string(*o)
}

func (o *outputFormat) Set(s string) error {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputTable, outputJSON, outputYAML:
		*o = f
		return nil
	default:
		return fmt.Errorf("invalid output format %q (want table, json or yaml)", s)
	}
}

func (o *outputFormat) Type() string {
	return "format"
}

// encode writes v as JSON or YAML. It reports false for the table format.
func (o outputFormat) encode(w io.Writer, v any) (bool, error) {
	switch o {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}

		return true, enc.Close()
	default:
		return false, nil
	}
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Sprintf("✅ "+format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Sprintf("⚠️  "+format, args...))
}

func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s %v\n", labelStyle.Sprintf("%-10s", label+":"), value)
}

// withSpinner runs fn while a spinner is shown on w. The spinner is skipped in dry-run mode.
func withSpinner[T any](a *app, message string, fn func() (T, error)) (T, error) {
	if a.runtime.DryRun {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.errOut))
	s.Suffix = " " + message
	_ = s.Color("cyan", "bold")
	s.Start()
	defer s.Stop()

	return fn()
}

// renderTransaction reports a submitted transaction, or the instructions a dry run built.
func renderTransaction(w io.Writer, action string, result types.TransactionResult) error {
	if result.Hash == "" {
		printWarning(w, "dry run: %s was not submitted", action)

		return renderInstructions(w, result.RawData)
	}

	printSuccess(w, "%s confirmed", action)
	printField(w, "Signature", result.Hash)
	printField(w, "Slot", result.Slot)

	return nil
}

func renderProposal(w io.Writer, action string, result themis.ProposeResult) error {
	if err := renderTransaction(w, action, result.TransactionResult); err != nil {
		return err
	}
	printField(w, "Proposal", result.Proposal)
	printField(w, "Index", result.Index)

	return nil
}

// renderInstructions prints each instruction with its accounts and hex encoded data.
func renderInstructions(w io.Writer, instructions []solana.Instruction) error {
	for i, ix := range instructions {
		data, err := ix.Data()
		if err != nil {
			return fmt.Errorf("unable to get data of instruction %d: %w", i, err)
		}

		fmt.Fprintf(w, "\n%s %s\n", labelStyle.Sprintf("#%d", i), ix.ProgramID())

		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"", "Account", "Signer", "Writable"})
		for j, meta := range ix.Accounts() {
			t.AppendRow(table.Row{j, meta.PublicKey, flag(meta.IsSigner), flag(meta.IsWritable)})
		}
		fmt.Fprintln(w, t.Render())
		fmt.Fprintf(w, "%s %s\n", faintStyle.Sprint("data:"), hex.EncodeToString(data))
	}

	return nil
}

func flag(b bool) string {
	if b {
		return "x"
	}

	return ""
}

func renderBuffers(w io.Writer, format outputFormat, authority solana.PublicKey, buffers []types.UpgradeableBuffer) error {
	if ok, err := format.encode(w, buffers); ok {
		return err
	}

	if len(buffers) == 0 {
		fmt.Fprintf(w, "No buffers found for authority %s\n", authority)
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Address", "Authority", "Lamports"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	var total uint64
	for _, b := range buffers {
		t.AppendRow(table.Row{b.Address, b.Authority, b.Lamports})
		total += b.Lamports
	}
	t.AppendFooter(table.Row{strconv.Itoa(len(buffers)) + " buffers", "", total})
	fmt.Fprintln(w, t.Render())

	return nil
}

func renderGovernanceConfig(w io.Writer, format outputFormat, cfg solanasdk.GovernanceConfig) error {
	if ok, err := format.encode(w, cfg); ok {
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"Vote threshold", fmt.Sprintf("%s %d%%", cfg.VoteThreshold.Type, cfg.VoteThreshold.Percentage)},
		{"Min community weight to create proposal", cfg.MinCommunityWeightToCreateProposal},
		{"Min council weight to create proposal", cfg.MinCouncilWeightToCreateProposal},
		{"Min transaction hold up time (s)", cfg.MinTransactionHoldUpTime},
		{"Max voting time (s)", cfg.MaxVotingTime},
		{"Vote tipping", cfg.VoteTipping},
		{"Proposal cool off time (s)", cfg.ProposalCoolOffTime},
	})
	fmt.Fprintln(w, t.Render())

	return nil
}
