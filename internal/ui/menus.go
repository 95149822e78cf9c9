package ui

import (
	"fmt"

	"github.com/mhmad0m0/modcatalog/internal/infra/telegram"
)

func OwnerMenu(pendingCount int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{
			{Text: "➕ Add mod", Data: "menu:addmod"},
			{Text: "🗂 Categories", Data: "menu:categories"},
		},
		{
			{Text: fmt.Sprintf("📝 Review queue (%d)", pendingCount), Data: "menu:review"},
		},
		{
			{Text: "📊 Stats", Data: "menu:stats"},
		},
	}
}

func UserMenu() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{{Text: "💡 Suggest a mod", Data: "menu:suggest"}},
	}
}

func CategoryMenu() [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{
			{Text: "➕ Add category", Data: "cat:add"},
			{Text: "📋 List", Data: "cat:list"},
		},
		{
			{Text: "⬅️ Back", Data: "cat:back"},
		},
	}
}

// ConfirmMenu builds the confirm/cancel row for the add and suggest
// flows; prefix selects which flow the callback lands in.
func ConfirmMenu(prefix string) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{
			{Text: "✅ Confirm", Data: prefix + ":ok"},
			{Text: "❌ Cancel", Data: prefix + ":cancel"},
		},
	}
}

func ReviewMenu(modID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{
		{
			{Text: "✅ Approve", Data: fmt.Sprintf("rev:approve:%d", modID)},
			{Text: "❌ Reject", Data: fmt.Sprintf("rev:reject:%d", modID)},
		},
		{
			{Text: "⏭ Skip", Data: "rev:skip"},
			{Text: "🏠 Menu", Data: "rev:stop"},
		},
	}
}
