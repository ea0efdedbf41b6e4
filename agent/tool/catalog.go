package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/contract"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Dependencies carries the components the lead tools run against. Threading
// them in explicitly keeps the executor testable with doubles.
type Dependencies struct {
	Collector contractx.Collector
	DataDir   string
}

func Build(deps Dependencies) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(deps)
}

func NewExecutor(deps Dependencies) Executor {
	fallback := DefaultExecutor()
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolLeadsFind:
			return executeFindTool(ctx, deps, tool, args)
		case ToolLeadsSave:
			return executeSaveTool(deps, tool, args)
		case ToolLeadsFindAndSave:
			return executeFindAndSaveTool(ctx, deps, tool, args)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func DefaultExecutor() Executor {
	return func(_ context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is not available", tool),
		}, nil
	}
}

func Infos() []*schema.ToolInfo {
	cityStateParam := &schema.ParameterInfo{
		Type:     schema.String,
		Desc:     "U.S. city and state, like 'Boston, MA'",
		Required: true,
	}

	return []*schema.ToolInfo{
		{
			Name: ToolLeadsFind,
			Desc: "Find pool companies for a city/state and return their contact info.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"city_state": cityStateParam,
			}),
		},
		{
			Name: ToolLeadsSave,
			Desc: "Save an already-fetched list of company rows to a CSV file under data/.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"rows": {
					Type:     schema.Array,
					Desc:     "Company rows as returned by leads.find",
					ElemInfo: &schema.ParameterInfo{Type: schema.Object},
					Required: true,
				},
				"city_state": cityStateParam,
			}),
		},
		{
			Name: ToolLeadsFindAndSave,
			Desc: "Find pool companies for a city/state and save them to a CSV file in one call.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"city_state": cityStateParam,
			}),
		},
	}
}
