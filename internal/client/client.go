package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// ErrUnauthorized сервер отверг токен или учётные данные.
var ErrUnauthorized = errors.New("client: требуется авторизация")

// APIError ответ сервера с кодом >= 400.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: код ответа %d: %s", e.StatusCode, e.Message)
}

// Client HTTP клиент REST API портфолио.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient создаёт клиент для сервера baseURL (например http://localhost:8080).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken задаёт Bearer токен для последующих запросов.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token возвращает текущий токен.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated сообщает, есть ли у клиента токен.
func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// Login выполняет вход и запоминает выданный токен.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, func(body []byte) error {
		return json.Unmarshal(body, &resp)
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		return nil, ErrUnauthorized
	}

	c.SetToken(resp.Token)
	return resp.User, nil
}

// GetPortfolio загружает содержимое сайта. Без токена сервер отдаёт портфолио владельца по умолчанию.
func (c *Client) GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error) {
	var out dto.PortfolioResponse
	if err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, dataInto(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

// SavePortfolio отправляет группы содержимого. nil группы сервер не трогает.
func (c *Client) SavePortfolio(ctx context.Context, req dto.SavePortfolioRequest) (*dto.PortfolioResponse, error) {
	var out dto.PortfolioResponse
	if err := c.do(ctx, http.MethodPost, "/api/portfolio", req, dataInto(&out)); err != nil {
		return nil, err
	}
	return &out, nil
}

// dataInto разбирает конверт {"success":true,"data":...}.
func dataInto(out any) func([]byte) error {
	return func(body []byte) error {
		var env struct {
			Success bool            `json:"success"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return fmt.Errorf("client: некорректный ответ: %w", err)
		}
		if !env.Success {
			return fmt.Errorf("client: сервер вернул success=false")
		}
		return json.Unmarshal(env.Data, out)
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any, decode func([]byte) error) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var errorBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &errorBody)
		if errorBody.Error == "" {
			errorBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errorBody.Error}
	}

	return decode(raw)
}
