package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"
	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	toolx "github.com/tanpawarit/Poolive-Lead-Generation-Agent/agent/tool"
)

const defaultMaxToolRounds = 8

type Options struct {
	Model         string
	Temperature   float64
	SystemPrompt  string
	MaxToolRounds int
}

// Runner binds the lead tools to a chat model and drives a line-oriented
// conversation: user input in, assistant reply out, tool calls executed in
// between. It is the thin framework glue around the tool surface.
type Runner struct {
	client        *openaisdk.Client
	model         string
	temperature   float64
	systemPrompt  string
	maxToolRounds int
	tools         []openaisdk.ChatCompletionToolParam
	execute       toolx.Executor
}

func New(client *openaisdk.Client, opts Options, infos []*schema.ToolInfo, execute toolx.Executor) (*Runner, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("model is required")
	}
	if execute == nil {
		return nil, errors.New("tool executor is required")
	}

	tools, err := toolParams(infos)
	if err != nil {
		return nil, err
	}

	maxToolRounds := opts.MaxToolRounds
	if maxToolRounds <= 0 {
		maxToolRounds = defaultMaxToolRounds
	}

	return &Runner{
		client:        client,
		model:         opts.Model,
		temperature:   opts.Temperature,
		systemPrompt:  opts.SystemPrompt,
		maxToolRounds: maxToolRounds,
		tools:         tools,
		execute:       execute,
	}, nil
}

// Run reads user lines from in until EOF or an exit command. Upstream
// failures raised by a tool are relayed to the user and logged, not fatal
// to the loop.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	history := []openaisdk.ChatCompletionMessageParamUnion{}
	if r.systemPrompt != "" {
		history = append(history, openaisdk.SystemMessage(r.systemPrompt))
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, "> ")
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		history = append(history, openaisdk.UserMessage(line))
		reply, updated, err := r.Respond(ctx, history)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Fprintf(out, "error: %v\n> ", err)
			continue
		}
		history = updated
		fmt.Fprintf(out, "%s\n> ", reply)
	}
	return scanner.Err()
}

// Respond runs one conversational turn: it keeps invoking the model and
// executing requested tools until the model answers in plain text. The
// returned history includes every message exchanged during the turn.
func (r *Runner) Respond(
	ctx context.Context,
	history []openaisdk.ChatCompletionMessageParamUnion,
) (string, []openaisdk.ChatCompletionMessageParamUnion, error) {
	for round := 0; round < r.maxToolRounds; round++ {
		resp, err := r.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
			Model:       r.model,
			Messages:    history,
			Tools:       r.tools,
			Temperature: openaisdk.Float(r.temperature),
		})
		if err != nil {
			return "", nil, fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", nil, errors.New("chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		history = append(history, msg.ToParam())

		if len(msg.ToolCalls) == 0 {
			return msg.Content, history, nil
		}

		for _, call := range msg.ToolCalls {
			payload, err := r.runToolCall(ctx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				return "", nil, err
			}
			history = append(history, openaisdk.ToolMessage(payload, call.ID))
		}
	}
	return "", nil, fmt.Errorf("tool loop exceeded %d rounds", r.maxToolRounds)
}

func (r *Runner) runToolCall(ctx context.Context, rawName, rawArgs string) (string, error) {
	name := strings.TrimSpace(rawName)
	args := map[string]any{}
	if raw := strings.TrimSpace(rawArgs); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return "", fmt.Errorf("invalid arguments for tool=%s: %w", name, err)
		}
	}

	log.Debug().Str("tool", name).Msg("executing tool call")

	result, err := r.execute(ctx, name, args)
	if err != nil {
		return "", fmt.Errorf("tool=%s: %w", name, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal result for tool=%s: %w", name, err)
	}
	return string(payload), nil
}

// toolParams converts the eino tool catalog into OpenAI function-calling
// tool definitions.
func toolParams(infos []*schema.ToolInfo) ([]openaisdk.ChatCompletionToolParam, error) {
	params := make([]openaisdk.ChatCompletionToolParam, 0, len(infos))
	for _, info := range infos {
		if info == nil || strings.TrimSpace(info.Name) == "" {
			continue
		}

		fn := openaisdk.FunctionDefinitionParam{
			Name:        info.Name,
			Description: openaisdk.String(info.Desc),
		}

		if info.ParamsOneOf != nil {
			openAPISchema, err := info.ParamsOneOf.ToOpenAPIV3()
			if err != nil {
				return nil, fmt.Errorf("tool=%s params: %w", info.Name, err)
			}
			raw, err := json.Marshal(openAPISchema)
			if err != nil {
				return nil, fmt.Errorf("tool=%s marshal params: %w", info.Name, err)
			}
			var schemaMap map[string]any
			if err := json.Unmarshal(raw, &schemaMap); err != nil {
				return nil, fmt.Errorf("tool=%s decode params: %w", info.Name, err)
			}
			fn.Parameters = openaisdk.FunctionParameters(schemaMap)
		}

		params = append(params, openaisdk.ChatCompletionToolParam{Function: fn})
	}
	return params, nil
}
