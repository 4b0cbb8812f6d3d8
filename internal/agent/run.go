package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
)

// Run executes one research task and returns the final report text. Tool
// frames are drained silently (plan updates reach the user through the plan
// monitor, not through agent output); the last assistant message wins.
func Run(ctx context.Context, runner *adk.Runner, query string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.User, Content: BuildTaskPrompt(query)},
	}

	iter := runner.Run(ctx, messages)

	var report string
	for {
		event, ok := iter.Next()
		if !ok {
			break
		}

		if event.Err != nil {
			return "", fmt.Errorf("research run: %w", event.Err)
		}

		if event.Output == nil || event.Output.MessageOutput == nil {
			continue
		}
		mv := event.Output.MessageOutput

		// Tool results (intermediate ReAct steps) — drain to avoid
		// leaking stream goroutines.
		if mv.Role == schema.Tool {
			if mv.IsStreaming && mv.MessageStream != nil {
				mv.MessageStream.Close()
			}
			continue
		}

		if mv.IsStreaming {
			content, err := drainStream(mv.MessageStream)
			if err != nil {
				slog.Debug("assistant stream truncated", "error", err)
			}
			if content != "" {
				report = content
			}
			continue
		}

		if mv.Message != nil {
			// Intermediate assistant messages that only carry tool calls
			if len(mv.Message.ToolCalls) > 0 && mv.Message.Content == "" {
				continue
			}
			if mv.Message.Content != "" {
				report = mv.Message.Content
			}
		}
	}

	if report == "" {
		return "", fmt.Errorf("research run: agent produced no report")
	}
	return report, nil
}

func drainStream(stream *schema.StreamReader[*schema.Message]) (string, error) {
	var full string
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			return full, nil
		}
		if err != nil {
			return full, err
		}
		if chunk != nil && chunk.Content != "" {
			full += chunk.Content
		}
	}
}
