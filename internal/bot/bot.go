// Package bot is the Telegram front end: presentation glue over the ledger
// service, with no business rules of its own.
package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"starledger/internal/ledger"
)

type Bot struct {
	api *tgbotapi.BotAPI
	svc *ledger.Service
	log *logrus.Entry
}

func New(token string, svc *ledger.Service, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %v", err)
	}
	return &Bot{
		api: api,
		svc: svc,
		log: log.WithField("component", "bot"),
	}, nil
}

// Run polls for updates until the update channel closes.
func (b *Bot) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.log.WithField("username", b.api.Self.UserName).Info("telegram bot started")
	for update := range updates {
		switch {
		case update.Message != nil && update.Message.IsCommand():
			b.handleCommand(update.Message)
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	if err := b.svc.EnsureUser(userID); err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("failed to register user")
		return
	}

	switch msg.Command() {
	case "start":
		b.handleStart(msg, userID)
	case "withdraw":
		b.handleWithdraw(msg, userID)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message, userID string) {
	// Deep-link deposits arrive as "/start pay_<id>_<amount>"
	if payload := msg.CommandArguments(); strings.HasPrefix(payload, "pay_") {
		b.handlePayment(msg.Chat.ID, userID, payload)
	}

	wallet, err := b.svc.Wallet(userID)
	if err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("failed to load wallet")
		return
	}

	text := fmt.Sprintf(
		"🎉 Welcome to the star mining system!\n\n🌟 Balance: %s\n🎖 Level: %d\n⏳ Harvest every: 8 hours\n\nPick an option below:",
		formatAmount(wallet.Balance), wallet.Level,
	)
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyMarkup = mainMenu()
	b.send(reply)
}

func (b *Bot) handlePayment(chatID int64, userID, payload string) {
	parts := strings.Split(payload, "_")
	if len(parts) != 3 || parts[1] != userID {
		b.send(tgbotapi.NewMessage(chatID, "❗ Invalid payment link."))
		return
	}
	amount, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "❗ Invalid payment link."))
		return
	}
	if err := b.svc.Deposit(userID, amount); err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("deposit failed")
		b.send(tgbotapi.NewMessage(chatID, "❗ Payment could not be recorded."))
		return
	}
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Paid %d stars.", amount)))
}

func (b *Bot) handleWithdraw(msg *tgbotapi.Message, userID string) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(msg.CommandArguments()), 64)
	if err != nil {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Usage: /withdraw <amount>"))
		return
	}
	if err := b.svc.RequestWithdraw(userID, amount); err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			b.send(tgbotapi.NewMessage(msg.Chat.ID, "❗ Amount must be positive."))
			return
		}
		b.log.WithError(err).WithField("user_id", userID).Error("withdraw request failed")
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "❗ Withdraw request failed, try again later."))
		return
	}
	b.send(tgbotapi.NewMessage(msg.Chat.ID,
		fmt.Sprintf("💸 Withdraw request for %s stars submitted for review.", formatAmount(amount))))
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.WithError(err).Warn("failed to answer callback")
	}

	userID := strconv.FormatInt(query.From.ID, 10)
	if err := b.svc.EnsureUser(userID); err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("failed to register user")
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch {
	case query.Data == "mine_menu":
		b.showMineMenu(chatID, messageID, userID)
	case query.Data == "mine_now":
		b.mineNow(chatID, messageID, userID)
	case query.Data == "wallet":
		b.showWallet(chatID, messageID, userID)
	case strings.HasPrefix(query.Data, "history_"):
		page, _ := strconv.Atoi(strings.TrimPrefix(query.Data, "history_"))
		b.showHistory(chatID, messageID, userID, page)
	case query.Data == "back_to_menu":
		b.edit(chatID, messageID, "Pick an option below:", mainMenu())
	}
}

func (b *Bot) showMineMenu(chatID int64, messageID int, userID string) {
	status, err := b.svc.MineStatus(userID)
	if err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("failed to load mine status")
		return
	}
	text := fmt.Sprintf(
		"⛏ Star Mining\n\n📈 Level: %d\n🎁 Reward: %s stars\n🌟 Balance: %s\n⏳ Time left: %s",
		status.Level, formatAmount(status.Reward), formatAmount(status.Balance), status.Wait,
	)
	b.edit(chatID, messageID, text, mineMenu())
}

func (b *Bot) mineNow(chatID int64, messageID int, userID string) {
	reward, err := b.svc.Claim(userID)
	if err != nil {
		var notReady *ledger.ClaimNotReadyError
		if errors.As(err, &notReady) {
			text := fmt.Sprintf("⏳ Not time to harvest yet. Come back in %s!",
				ledger.FormatCooldown(notReady.Remaining))
			b.edit(chatID, messageID, text, mainMenu())
			return
		}
		b.log.WithError(err).WithField("user_id", userID).Error("claim failed")
		b.edit(chatID, messageID, "❗ Something went wrong, try again later.", mainMenu())
		return
	}
	b.edit(chatID, messageID,
		fmt.Sprintf("✅ Harvest successful! 🌟 +%s stars.", formatAmount(reward)), mainMenu())
}

func (b *Bot) showWallet(chatID int64, messageID int, userID string) {
	wallet, err := b.svc.Wallet(userID)
	if err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("failed to load wallet")
		return
	}
	text := fmt.Sprintf(
		"💼 Wallet\n\n🌟 Balance: %s\n➕ Total deposited: %d\n🎖 Level: %d",
		formatAmount(wallet.Balance), wallet.TotalDeposited, wallet.Level,
	)
	b.edit(chatID, messageID, text, backButton())
}

func (b *Bot) showHistory(chatID int64, messageID int, userID string, page int) {
	history, err := b.svc.History(userID, page)
	if err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("failed to load history")
		return
	}

	text := "📜 No transactions."
	if len(history.Entries) > 0 {
		lines := make([]string, 0, len(history.Entries))
		for _, e := range history.Entries {
			lines = append(lines, formatEntry(e))
		}
		text = "📜 Transaction history:\n\n" + strings.Join(lines, "\n")
	}
	b.edit(chatID, messageID, text, historyMenu(page, history.HasPrev, history.HasNext))
}

func (b *Bot) edit(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	if _, err := b.api.Send(edit); err != nil {
		b.log.WithError(err).Warn("failed to edit message")
	}
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).Warn("failed to send message")
	}
}
