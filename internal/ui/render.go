package ui

import (
	"fmt"
	"strings"

	"github.com/mhmad0m0/modcatalog/internal/domain/model"
)

type ModDraft struct {
	Name         string
	Description  string
	DownloadLink string
	HasImage     bool
}

func RenderDraftSummary(draft ModDraft) string {
	image := "none"
	if draft.HasImage {
		image = "attached"
	}
	return strings.Join([]string{
		"Please confirm:",
		fmt.Sprintf("Name: %s", draft.Name),
		fmt.Sprintf("Description: %s", draft.Description),
		fmt.Sprintf("Link: %s", draft.DownloadLink),
		fmt.Sprintf("Image: %s", image),
	}, "\n")
}

func RenderReviewCard(mod model.Mod, position, total int) string {
	return strings.Join([]string{
		fmt.Sprintf("Suggestion %d/%d", position, total),
		fmt.Sprintf("#%d %s", mod.ID, mod.Name),
		mod.Description,
		fmt.Sprintf("Link: %s", mod.DownloadLink),
		fmt.Sprintf("From: %d", mod.UploaderTGID),
		fmt.Sprintf("Submitted: %s", mod.CreatedAt.UTC().Format("2006-01-02 15:04")),
	}, "\n")
}

func RenderCategoryList(categories []model.Category) string {
	if len(categories) == 0 {
		return MsgNoCategories
	}
	lines := make([]string, 0, len(categories)+1)
	lines = append(lines, "Categories:")
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("- %s (#%d)", category.Name, category.ID))
	}
	return strings.Join(lines, "\n")
}

func RenderStats(total, approved, pending, rejected int64) string {
	return strings.Join([]string{
		"Catalog stats",
		fmt.Sprintf("Total: %d", total),
		fmt.Sprintf("Approved: %d", approved),
		fmt.Sprintf("Pending: %d", pending),
		fmt.Sprintf("Rejected: %d", rejected),
	}, "\n")
}
