package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createAskTool returns the ask tool definition
func createAskTool() mcp.Tool {
	return mcp.NewTool("ask",
		mcp.WithDescription("Ask a question about the course catalog. The answer is grounded in indexed course material when a sufficiently similar document exists."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The question to answer"),
		),
	)
}

// createSearchDocumentsTool returns the search_documents tool definition
func createSearchDocumentsTool() mcp.Tool {
	return mcp.NewTool("search_documents",
		mcp.WithDescription("Search indexed course documents by semantic similarity"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 10, max: 50)"),
		),
	)
}

// createIndexStatsTool returns the index_stats tool definition
func createIndexStatsTool() mcp.Tool {
	return mcp.NewTool("index_stats",
		mcp.WithDescription("Show corpus index statistics: document counts per source type, current generation, last rebuild time"),
	)
}
