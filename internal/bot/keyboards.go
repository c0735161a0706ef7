package bot

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"starledger/internal/ledger"
)

func mainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⛏ Mine", "mine_menu"),
			tgbotapi.NewInlineKeyboardButtonData("💼 Wallet", "wallet"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 History", "history_0"),
		),
	)
}

func mineMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⛏ Harvest", "mine_now"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "back_to_menu"),
		),
	)
}

func historyMenu(page int, hasPrev, hasNext bool) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if hasPrev {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Prev", "history_"+strconv.Itoa(page-1)))
	}
	if hasNext {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", "history_"+strconv.Itoa(page+1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "back_to_menu"))
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func backButton() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "back_to_menu"),
		),
	)
}

func formatEntry(e ledger.HistoryEntry) string {
	when := time.Unix(e.Time, 0).Format("02/01/2006 15:04")
	switch e.Kind {
	case ledger.EntryDeposit:
		return fmt.Sprintf("➕ Deposited %s stars - %s", formatAmount(e.Amount), when)
	case ledger.EntryWithdrawal:
		return fmt.Sprintf("➖ Withdrew %s stars - %s", formatAmount(e.Amount), when)
	default:
		return fmt.Sprintf("⛏ Mined %s stars - %s", formatAmount(e.Amount), when)
	}
}

// formatAmount trims trailing zeros so whole-star amounts print without a
// decimal point.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
