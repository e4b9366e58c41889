package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"linguistica/internal/logging"
	"linguistica/internal/params"
	"linguistica/internal/report"
	"linguistica/internal/serialize"
	"linguistica/internal/sortutil"
)

func newParamsCommand(ctx *commandContext) *cobra.Command {
	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "Inspect analysis parameters",
	}

	paramsCmd.AddCommand(newParamsListCommand(ctx))
	paramsCmd.AddCommand(newParamsStagesCommand(ctx))
	paramsCmd.AddCommand(newParamsGetCommand(ctx))
	paramsCmd.AddCommand(newParamsDumpCommand(ctx))

	return paramsCmd
}

// parameterRow is one line of the params list output.
type parameterRow struct {
	Name    string         `json:"name"`
	Value   int            `json:"value"`
	Default int            `json:"default"`
	Stages  []params.Stage `json:"stages"`
}

func (r parameterRow) displayValue() string {
	if params.IsUnbounded(r.Name, r.Value) {
		return "unbounded"
	}
	return strconv.Itoa(r.Value)
}

// firstStageRank orders a parameter by the earliest stage that reads it.
// Parameters no stage reads sort last.
func (r parameterRow) firstStageRank() int {
	if len(r.Stages) == 0 {
		return len(params.Stages())
	}
	return r.Stages[0].Rank()
}

func newParamsListCommand(ctx *commandContext) *cobra.Command {
	var stageFlag string
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parameters with their effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			reg, err := ctx.registry()
			if err != nil {
				return err
			}
			cfg, _ := ctx.ensureConfig()
			logger, _ := ctx.ensureLogger()

			runCtx := cmd.Context()
			var stageNames []string
			if strings.TrimSpace(stageFlag) != "" {
				stage, err := params.ParseStage(stageFlag)
				if err != nil {
					return err
				}
				if stageNames, err = reg.ForStage(stage); err != nil {
					return err
				}
				runCtx = logging.WithStage(runCtx, stage.String())
			}
			logger = logging.ForContext(runCtx, logging.NewComponentLogger(logger, "params"), cfg.Logging.StageOverrides)

			var rows []parameterRow
			for _, p := range reg.Parameters() {
				if stageNames != nil && !slices.Contains(stageNames, p.Name) {
					continue
				}
				def, _ := reg.Default(p.Name)
				rows = append(rows, parameterRow{Name: p.Name, Value: p.Value, Default: def, Stages: p.Stages})
			}
			rows = sortutil.GroupedSort(logger, rows, parameterRow.firstStageRank, func(r parameterRow) string { return r.Name }, sortutil.Options{})
			logger.Debug("parameters listed", logging.Int("count", len(rows)), logging.String("format", string(format)))

			title := "Parameters"
			if stageFlag != "" {
				title = fmt.Sprintf("Parameters for %s", strings.ToLower(strings.TrimSpace(stageFlag)))
			}
			tbl := report.Table[parameterRow]{
				Title:   title,
				Headers: []string{"Name", "Value", "Default", "Stages"},
				Cells: []func(parameterRow) string{
					func(r parameterRow) string { return r.Name },
					parameterRow.displayValue,
					func(r parameterRow) string { return strconv.Itoa(r.Default) },
					func(r parameterRow) string { return joinStages(r.Stages) },
				},
			}
			return writeOutput(runCtx, cmd, outputFlag, func(w io.Writer) error {
				return renderRows(w, format, rows, tbl, rows)
			})
		},
	}

	cmd.Flags().StringVar(&stageFlag, "stage", "", "Only list parameters read by this stage")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, markdown, latex, or json")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

type stageRow struct {
	Stage       params.Stage `json:"stage"`
	Description string       `json:"description"`
	Parameters  []string     `json:"parameters"`
}

func newParamsStagesCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List analysis stages and the parameters each reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(formatFlag)
			if err != nil {
				return err
			}
			reg, err := ctx.registry()
			if err != nil {
				return err
			}

			rows := make([]stageRow, 0, len(params.Stages()))
			for _, stage := range params.Stages() {
				desc, err := reg.Describe(stage)
				if err != nil {
					return err
				}
				names, err := reg.ForStage(stage)
				if err != nil {
					return err
				}
				rows = append(rows, stageRow{Stage: stage, Description: desc, Parameters: names})
			}

			tbl := report.Table[stageRow]{
				Title:   "Stages",
				Headers: []string{"Stage", "Description", "Parameters"},
				Cells: []func(stageRow) string{
					func(r stageRow) string { return r.Stage.String() },
					func(r stageRow) string { return r.Description },
					func(r stageRow) string { return strings.Join(r.Parameters, ", ") },
				},
				HideIndex: true,
			}
			return renderRows(cmd.OutOrStdout(), format, rows, tbl, rows)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format: table, markdown, latex, or json")
	return cmd
}

func newParamsGetCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print the effective value of a parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.registry()
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[0])
			value, err := reg.Get(name)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, map[string]int{name: value})
			}
			if params.IsUnbounded(name, value) {
				fmt.Fprintln(cmd.OutOrStdout(), "unbounded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newParamsDumpCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var stageFlag string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write effective parameter values as a parameters.json override file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ctx.registry()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "params")

			runCtx := cmd.Context()
			values := reg.Values()
			if strings.TrimSpace(stageFlag) != "" {
				stage, err := params.ParseStage(stageFlag)
				if err != nil {
					return err
				}
				runCtx = logging.WithStage(runCtx, stage.String())
				stageValues, err := reg.StageValues(stage)
				if err != nil {
					return err
				}
				values = make(map[string]int, len(stageValues))
				for _, p := range stageValues {
					values[p.Name] = p.Value
				}
			}
			if err := writeOutput(runCtx, cmd, outputFlag, func(w io.Writer) error {
				return serialize.Encode(w, values)
			}); err != nil {
				return err
			}
			logger.InfoContext(runCtx, "parameters dumped",
				logging.Int("count", len(values)),
				logging.String("output", outputFlag),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&stageFlag, "stage", "", "Only dump parameters read by this stage")
	return cmd
}

func joinStages(stages []params.Stage) string {
	if len(stages) == 0 {
		return "-"
	}
	parts := make([]string, len(stages))
	for i, stage := range stages {
		parts[i] = stage.String()
	}
	return strings.Join(parts, ", ")
}
