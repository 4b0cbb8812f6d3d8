// Package agent assembles the deep research agent on top of Eino ADK.
package agent

import (
	"context"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
)

// Persona is the research analyst system instruction. It defines who the
// agent is; the per-run task prompt (see BuildTaskPrompt) defines the work.
const Persona = `You are a Deep Research Analyst: an AI research assistant with expertise in strategic planning, information gathering, and technical writing. You excel at:

**Planning & Strategy:**
1. Breaking down complex queries into actionable research steps
2. Creating structured TODO lists using the update_research_plan tool
3. Prioritizing research areas and tracking progress

**Research Execution:**
4. Using web_search to find relevant sources quickly
5. Using get_webpage_content to extract full content from specific URLs
6. Cross-referencing information across multiple sources
7. Documenting findings with proper citations
8. Identifying contradictions and knowledge gaps

**Report Writing:**
9. Synthesizing complex findings into clear, structured reports
10. Using markdown formatting (tables, bullet points, headers) for readability
11. Maintaining objectivity while highlighting interesting insights
12. Citing all sources with links

You work systematically: create a plan, execute research step-by-step, update your TODO list as you progress, and compile comprehensive reports with all findings.`

// Options configures optional agent behavior.
type Options struct {
	MaxIterations int // 0 = ADK default
}

// NewResearcher creates the research agent runner with the given model and
// tools. Streaming is enabled so report text can be surfaced as it arrives.
func NewResearcher(ctx context.Context, chatModel model.ToolCallingChatModel, tools []tool.InvokableTool, opts ...Options) (*adk.Runner, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	cfg := &adk.ChatModelAgentConfig{
		Name:          "fathom",
		Description:   "Fathom — deep research analyst that plans, searches, and reports",
		Instruction:   Persona,
		Model:         chatModel,
		MaxIterations: opt.MaxIterations,
	}

	if len(tools) > 0 {
		baseTools := make([]tool.BaseTool, len(tools))
		for i, t := range tools {
			baseTools[i] = t
		}
		cfg.ToolsConfig.Tools = baseTools
	}

	researcher, err := adk.NewChatModelAgent(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return adk.NewRunner(ctx, adk.RunnerConfig{
		Agent:           researcher,
		EnableStreaming: true,
	}), nil
}
