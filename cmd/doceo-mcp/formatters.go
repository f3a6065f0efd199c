package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// formatAnswer formats an ask response as markdown
func formatAnswer(response *interfaces.AskResponse) string {
	var sb strings.Builder
	sb.WriteString(response.Answer)
	sb.WriteString("\n\n---\n")

	if response.Grounded {
		sb.WriteString(fmt.Sprintf("**Grounded:** yes (similarity %.3f)\n", response.Score))
		if response.Source != nil {
			sb.WriteString(fmt.Sprintf("**Source:** %s (%s)\n", response.Source.SourceID, response.Source.SourceType))
		}
	} else {
		sb.WriteString("**Grounded:** no (answered from general knowledge)\n")
	}

	return sb.String()
}

// formatSearchResults formats scored documents as markdown
func formatSearchResults(query string, results []interfaces.ScoredDocument) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Search Results for \"%s\" (%d results)\n\n", query, len(results)))

	if len(results) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	for i, result := range results {
		doc := result.Document
		sb.WriteString(fmt.Sprintf("### %d. %s (%s)\n", i+1, doc.SourceID, doc.SourceType))
		sb.WriteString(fmt.Sprintf("**Score:** %.3f\n\n", result.Score))

		text := doc.Text
		if len(text) > 300 {
			text = text[:300] + "..."
		}
		sb.WriteString(text)
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}

// formatIndexStats formats index statistics as markdown
func formatIndexStats(stats *models.IndexStats) string {
	var sb strings.Builder
	sb.WriteString("## Corpus Index Statistics\n\n")
	sb.WriteString(fmt.Sprintf("**Total documents:** %d\n", stats.TotalDocuments))
	sb.WriteString(fmt.Sprintf("**Generation:** %s\n", stats.Generation))

	if !stats.LastRebuilt.IsZero() {
		sb.WriteString(fmt.Sprintf("**Last rebuilt:** %s\n", stats.LastRebuilt.Format(time.RFC3339)))
	}

	if len(stats.DocumentsBySource) > 0 {
		sb.WriteString("\n| Source type | Documents |\n|---|---|\n")
		for _, sourceType := range []string{models.SourceTypeCourse, models.SourceTypeLesson, models.SourceTypeDetail} {
			if count, ok := stats.DocumentsBySource[sourceType]; ok {
				sb.WriteString(fmt.Sprintf("| %s | %d |\n", sourceType, count))
			}
		}
	}

	return sb.String()
}
