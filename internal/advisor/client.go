// Package advisor is the typed client for the financial advice service.
//
// Calls are bound onto two gateways: a short one for the calculators and the
// health check, and a long one for the model-backed chat and fraud endpoints,
// which may take minutes on a cold start. Every request is validated locally
// before it reaches the network.
package advisor

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/longkey1/fincoach/internal/fincoach"
	"github.com/longkey1/fincoach/internal/fincoach/config"
	"github.com/longkey1/fincoach/internal/transport"
)

const (
	PathChat            = "/api/chat"
	PathFraudDetect     = "/api/fraud/detect"
	PathFraudFinancial  = "/api/fraud/analyze-financial"
	PathBudgetAnalyze   = "/api/budget/analyze"
	PathSavingsProject  = "/api/savings/project"
	PathInvestCalculate = "/api/invest/calc"
	PathHealth          = "/api/health"
)

// Client calls the advice service.
type Client struct {
	short  *transport.Gateway
	long   *transport.Gateway
	logger *slog.Logger
}

// NewClient binds a client to a short and a long gateway.
func NewClient(short, long *transport.Gateway, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{short: short, long: long, logger: logger}
}

// NewFromConfig builds both gateways from the configured base URL and
// timeouts.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := transport.SharedHTTPClient()
	short := transport.New(cfg.GetBaseURL(), cfg.Timeout,
		transport.WithHTTPClient(httpClient), transport.WithLogger(logger))
	long := transport.New(cfg.GetBaseURL(), cfg.AITimeout,
		transport.WithHTTPClient(httpClient), transport.WithLogger(logger))
	return NewClient(short, long, logger)
}

// Short returns the calculator gateway.
func (c *Client) Short() *transport.Gateway {
	return c.short
}

// Long returns the model gateway.
func (c *Client) Long() *transport.Gateway {
	return c.long
}

// Chat sends one conversational turn.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.UserInput = strings.TrimSpace(req.UserInput)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return send[ChatResponse](ctx, c, c.long, PathChat, Wrap(ActionChat, req))
}

// Analyze dispatches a fraud request to the endpoint matching its analysis
// type.
func (c *Client) Analyze(ctx context.Context, req FraudRequest) (*FraudResult, error) {
	kind, err := fincoach.ParseAnalysisType(string(req.AnalysisType))
	if err != nil {
		return nil, err
	}
	if kind == fincoach.AnalysisFinancial {
		return c.AnalyzeFinancialFraud(ctx, req.Content)
	}
	req.AnalysisType = kind
	return c.DetectFraud(ctx, req)
}

// DetectFraud runs a general fraud analysis.
func (c *Client) DetectFraud(ctx context.Context, req FraudRequest) (*FraudResult, error) {
	req.Content = strings.TrimSpace(req.Content)
	if req.AnalysisType == "" {
		req.AnalysisType = fincoach.AnalysisGeneral
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return send[FraudResult](ctx, c, c.long, PathFraudDetect, Wrap(ActionFraud, req))
}

// AnalyzeFinancialFraud runs the financial fraud analysis.
func (c *Client) AnalyzeFinancialFraud(ctx context.Context, content string) (*FraudResult, error) {
	req := FraudRequest{Content: strings.TrimSpace(content), AnalysisType: fincoach.AnalysisFinancial}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return send[FraudResult](ctx, c, c.long, PathFraudFinancial, Wrap(ActionFraud, req))
}

// AnalyzeBudget analyzes a monthly budget.
func (c *Client) AnalyzeBudget(ctx context.Context, in BudgetInput) (*BudgetAnalysis, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return send[BudgetAnalysis](ctx, c, c.short, PathBudgetAnalyze, Wrap(ActionBudget, in))
}

// ProjectSavings projects progress toward a savings goal.
func (c *Client) ProjectSavings(ctx context.Context, in SavingsInput) (*SavingsProjection, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return send[SavingsProjection](ctx, c, c.short, PathSavingsProject, Wrap(ActionSavings, in))
}

// CalculateInvestment projects the future value of an investment plan.
func (c *Client) CalculateInvestment(ctx context.Context, in InvestInput) (*InvestProjection, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return send[InvestProjection](ctx, c, c.short, PathInvestCalculate, Wrap(ActionInvestment, in))
}

// Health checks that the service is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	return transport.Call[Health](ctx, c.short, http.MethodGet, PathHealth, nil)
}

func send[Resp, Req any](ctx context.Context, c *Client, g *transport.Gateway, path string, env Envelope[Req]) (*Resp, error) {
	c.logger.Debug("advisor call", "action", env.Action, "path", path, "base_url", g.BaseURL(), "timeout", g.Timeout())
	return transport.Call[Resp](ctx, g, http.MethodPost, path, env.Payload)
}
