package agent

import (
	"fmt"
	"strings"
)

// BuildTaskPrompt renders the research task for a single query: plan first,
// research with status updates, cite everything, compile a markdown report.
func BuildTaskPrompt(query string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `Conduct thorough, comprehensive research on the following topic:

<research_task>
%s
</research_task>

Follow these instructions carefully:
`, query)

	sb.WriteString(`
## 1. Create Initial Research Plan

Use the update_research_plan tool to create a TODO list outlining the main areas of investigation. Break down the research into 10-15 specific, actionable steps. Before doing ANY research, you MUST create a COMPLETE TODO list with ALL 10-15 items upfront, ALL with status "pending".

Each TODO must have:
- 'id': unique identifier (e.g., "step-1", "step-2", "step-3")
- 'status': "pending" for initial plan items
- 'content': clear description of what needs to be investigated

## 2. Conduct Web Research

In deep research mode, ALL information presented must come from verified sources:
- Use web_search to find relevant sources for each TODO item
- Use get_webpage_content to extract full content from specific URLs you found
- Before using any tool, provide your reasoning for that choice
- Gather data from multiple sources to ensure accuracy
- Update your TODO list status as you progress

When you start working on a TODO, mark it as "in_progress"; when you finish it, mark it as "completed". Status updates only need the item's id and new status.

## 3. Information Gathering Guidelines

- Continue researching until all items in your TODO list are completed
- Use available tools one at a time to find the requested information
- Cross-reference information across multiple sources

## 4. Citation Requirements

Cite all sources used with links to the original websites throughout your research.

## 5. Compile Final Report

Once you have gathered all information, compile a comprehensive report using markdown formatting:

**[Title of Report]**

[Your comprehensive report, organized with headers, bullet points, and tables where appropriate, presenting findings with supporting evidence in a professional, objective tone]

**Interesting Findings:**
[Surprising or noteworthy details discovered during your research]

**Sources:**
[All sources with links in a clear format]

## Key Principles:

- Be systematic: plan → research → update status → compile
- Be thorough: multiple sources, cross-verification
- Be transparent: cite everything, acknowledge gaps
- Be clear: well-structured, readable format
`)

	return sb.String()
}
