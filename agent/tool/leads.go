package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	contractx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/contract"
	exportx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/pkg/export"
)

const (
	ToolLeadsFind        = "leads.find"
	ToolLeadsSave        = "leads.save"
	ToolLeadsFindAndSave = "leads.find_and_save"
)

const (
	defaultDataDir = "data"
	fileSuffix     = "_pool_companies.csv"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts a human-readable string into a filesystem-safe lowercase
// token: 'Boston, MA' -> 'boston_ma'. Idempotent.
func Slug(s string) string {
	name := strings.ToLower(strings.TrimSpace(s))
	name = slugPattern.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// Argument problems come back as ToolResult.Error so the agent framework
// can relay them; upstream and filesystem failures propagate as Go errors.

func executeFindTool(ctx context.Context, deps Dependencies, tool string, args map[string]any) (contractx.ToolResult, error) {
	cityState, err := cityStateArg(args)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	rows, err := deps.Collector.Collect(ctx, cityState)
	if err != nil {
		return contractx.ToolResult{}, err
	}

	return contractx.ToolResult{
		Tool: tool,
		Result: contractx.FindOutput{
			Status:  contractx.StatusSuccess,
			Count:   len(rows),
			Results: rows,
		},
	}, nil
}

func executeSaveTool(deps Dependencies, tool string, args map[string]any) (contractx.ToolResult, error) {
	cityState, err := cityStateArg(args)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	rows, err := rowsArg(args)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	path, err := writeCompanyCSV(deps, cityState, rows)
	if err != nil {
		return contractx.ToolResult{}, err
	}

	return contractx.ToolResult{
		Tool: tool,
		Result: contractx.SaveOutput{
			Status: contractx.StatusSuccess,
			Path:   path,
			Count:  len(rows),
		},
	}, nil
}

func executeFindAndSaveTool(ctx context.Context, deps Dependencies, tool string, args map[string]any) (contractx.ToolResult, error) {
	cityState, err := cityStateArg(args)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	companies, err := deps.Collector.Collect(ctx, cityState)
	if err != nil {
		return contractx.ToolResult{}, err
	}

	rows := make([]exportx.FieldMapper, len(companies))
	for i, c := range companies {
		rows[i] = c
	}

	path, err := writeCompanyCSV(deps, cityState, rows)
	if err != nil {
		return contractx.ToolResult{}, err
	}

	return contractx.ToolResult{
		Tool: tool,
		Result: contractx.FindAndSaveOutput{
			Status:    contractx.StatusSuccess,
			Path:      path,
			Count:     len(companies),
			CityState: cityState,
		},
	}, nil
}

func writeCompanyCSV(deps Dependencies, cityState string, rows []exportx.FieldMapper) (string, error) {
	dataDir := deps.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, Slug(cityState)+fileSuffix)
	return exportx.WriteCSV(path, rows)
}

func cityStateArg(args map[string]any) (string, error) {
	raw, ok := args["city_state"]
	if !ok {
		return "", fmt.Errorf("%w: city_state is required", contractx.ErrValidation)
	}
	cityState, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: city_state must be a string", contractx.ErrValidation)
	}
	cityState = strings.TrimSpace(cityState)
	if cityState == "" {
		return "", fmt.Errorf("%w: city_state is empty", contractx.ErrValidation)
	}
	return cityState, nil
}

func rowsArg(args map[string]any) ([]exportx.FieldMapper, error) {
	raw, ok := args["rows"]
	if !ok {
		return nil, fmt.Errorf("%w: rows is required", contractx.ErrValidation)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: rows must be a list", contractx.ErrValidation)
	}

	rows := make([]exportx.FieldMapper, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: rows[%d] must be an object", contractx.ErrValidation, i)
		}
		rows = append(rows, exportx.MapRecord(m))
	}
	return rows, nil
}
