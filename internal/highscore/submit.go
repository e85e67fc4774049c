// Package highscore submits local best scores to an online leaderboard.
//
// A submission is two POSTs: the server first hands out a single-use nonce,
// then receives the score together with a MAC binding it to that nonce.
package highscore

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// Leaderboard endpoints, relative to the base URL.
const (
	noncePath  = "/nonce"
	submitPath = "/submit"
)

// maxResponse caps how much of a response body is read.
const maxResponse = 64 << 10

var (
	ErrNoName     = errors.New("highscore: player name is empty")
	ErrEmptyNonce = errors.New("highscore: server returned an empty nonce")
)

// Submission is one score sent to the leaderboard.
type Submission struct {
	Name    string
	Game    string
	Score   int
	Control string // "tilt" or "buttons"
}

// Result is the leaderboard's answer to a submission. Rank is zero when
// the server doesn't report one.
type Result struct {
	Rank    int
	Message string
}

// StatusError reports a non-2xx answer from the leaderboard.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("highscore: %s returned %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("highscore: %s returned %d: %s", e.Endpoint, e.Code, e.Body)
}

type payload struct {
	Name         string `json:"name"`
	Game         string `json:"game,omitempty"`
	Score        int    `json:"score"`
	Control      string `json:"control"`
	MAC          string `json:"mac"`
	Nonce        string `json:"nonce"`
	AccountToken string `json:"account_token,omitempty"`
}

// Client talks to one leaderboard server.
type Client struct {
	baseURL string
	secret  []byte
	token   string
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a client for the leaderboard at baseURL. secret keys
// the score MAC; token identifies the player's account and may be empty.
func NewClient(baseURL, secret, token string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Nonce asks the server for a fresh single-use nonce.
func (c *Client) Nonce(ctx context.Context) (string, error) {
	body, err := c.post(ctx, noncePath, nil)
	if err != nil {
		return "", err
	}

	nonce := strings.TrimSpace(string(body))
	if nonce == "" {
		return "", ErrEmptyNonce
	}
	return nonce, nil
}

// Submit fetches a nonce, signs s with it and posts the score.
func (c *Client) Submit(ctx context.Context, s Submission) (Result, error) {
	if strings.TrimSpace(s.Name) == "" {
		return Result{}, ErrNoName
	}

	nonce, err := c.Nonce(ctx)
	if err != nil {
		return Result{}, err
	}

	data, err := json.Marshal(payload{
		Name:         s.Name,
		Game:         s.Game,
		Score:        s.Score,
		Control:      s.Control,
		MAC:          Sign(c.secret, s, nonce),
		Nonce:        nonce,
		AccountToken: c.token,
	})
	if err != nil {
		return Result{}, fmt.Errorf("highscore: cannot encode submission: %w", err)
	}

	body, err := c.post(ctx, submitPath, data)
	if err != nil {
		return Result{}, err
	}

	res := parseResult(body)
	c.logger.Info("score submitted", "score", s.Score, "control", s.Control, "rank", res.Rank)
	return res, nil
}

// Sign returns the hex HMAC-SHA256 of the submission's name, score and
// nonce, keyed with secret.
func Sign(secret []byte, s Submission, nonce string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(s.Name))
	mac.Write([]byte{':'})
	mac.Write([]byte(strconv.Itoa(s.Score)))
	mac.Write([]byte{':'})
	mac.Write([]byte(nonce))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) post(ctx context.Context, path string, data []byte) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("posting", "url", url, "bytes", len(data))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("highscore: request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Endpoint: path,
			Code:     resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// parseResult reads the optional rank and message from a submit response.
// Servers that answer with plain text or nothing yield a zero Result.
func parseResult(body []byte) Result {
	if !gjson.ValidBytes(body) {
		return Result{Message: strings.TrimSpace(string(body))}
	}

	var res Result
	switch rank := gjson.GetBytes(body, "rank"); rank.Type {
	case gjson.Number:
		res.Rank = int(rank.Int())
	case gjson.String:
		res.Rank, _ = strconv.Atoi(rank.String())
	}
	res.Message = gjson.GetBytes(body, "message").String()
	return res
}
