package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
)

const whatsAppBaseURL = "https://wa.me/"

const messageDivider = "━━━━━━━━━━━━━━━━━━━━"

// WhatsAppService builds order requests sent to the shop over WhatsApp
type WhatsAppService struct {
	pricer  *CartPricer
	cfg     config.WhatsAppConfig
	printer *message.Printer
	logger  *zap.Logger
}

// NewWhatsAppService creates a new WhatsApp order service
func NewWhatsAppService(pricer *CartPricer, cfg config.WhatsAppConfig, logger *zap.Logger) *WhatsAppService {
	return &WhatsAppService{
		pricer:  pricer,
		cfg:     cfg,
		printer: message.NewPrinter(language.English),
		logger:  logger,
	}
}

// BuildOrderRequest prices the cart from the store and renders the chat link
func (s *WhatsAppService) BuildOrderRequest(ctx context.Context, body []byte) (*WhatsAppOrderResponse, error) {
	req, err := decodeCheckoutRequest(body)
	if err != nil {
		return nil, err
	}

	lines, err := req.Lines()
	if err != nil {
		return nil, err
	}

	items, err := s.pricer.Price(ctx, lines, domain.ParseLanguage(req.Language))
	if err != nil {
		return nil, err
	}

	text := s.renderMessage(items)
	s.logger.Info("WhatsApp order request built", zap.Int("items", len(items)))

	return &WhatsAppOrderResponse{
		URL:     whatsAppBaseURL + s.cfg.Phone + "?text=" + encodeURIComponent(text),
		Message: text,
	}, nil
}

func (s *WhatsAppService) renderMessage(items []domain.PricedLineItem) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		carat := item.Carat
		if carat == "" {
			carat = "N/A"
		}
		blocks = append(blocks, fmt.Sprintf(
			"✨ *%s*\n   🆔 *SKU:* %s\n   💎 *Ct:* %s\n   🔢 *Qty:* %d\n   💶 *Price:* %s",
			item.Name,
			domain.SKUFromID(item.ProductID),
			carat,
			item.Quantity,
			s.formatPrice(item.TotalMinorUnits()),
		))
	}

	var b strings.Builder
	b.WriteString("🛍️ *ORDER REQUEST* 💍\n\n")
	fmt.Fprintf(&b, "Hello %s! I would like to order the following items:\n\n", s.cfg.ShopName)
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n" + messageDivider + "\n")
	fmt.Fprintf(&b, "💰 *Total Estimate: %s*\n", s.formatPrice(TotalMinorUnits(items)))
	b.WriteString(messageDivider + "\n\n")
	b.WriteString("✅ Please confirm availability and shipping details. Looking forward to your response! ✨")

	return b.String()
}

// formatPrice renders cents as euros with grouping, e.g. €1,234.56
func (s *WhatsAppService) formatPrice(minorUnits int64) string {
	fixed := decimal.New(minorUnits, -2).StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "€" + fixed
	}
	return s.printer.Sprintf("€%d.%s", units, cents)
}

// encodeURIComponent escapes spaces as %20 rather than +
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
