package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"explainer/internal/errs"
	"explainer/internal/scan"
)

// Remote is a thin HTTP client for a DeepWiki-style analysis backend. It only
// does request/response JSON; streaming session replay is not part of this
// tool.
type Remote struct {
	base   string
	client *http.Client
}

func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Remote{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (r *Remote) Name() string { return "remote" }

// Healthy probes GET /health.
func (r *Remote) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type analyzeRequest struct {
	RepoPath     string `json:"repo_path"`
	IncludeTests bool   `json:"include_tests"`
}

type analyzeResponse struct {
	Modules []struct {
		Name    string   `json:"name"`
		Imports []string `json:"imports"`
	} `json:"modules"`
	Classes []struct {
		Module string `json:"module"`
		Name   string `json:"name"`
		Base   string `json:"base"`
	} `json:"classes"`
}

func (r *Remote) Analyze(ctx context.Context, root string) (*scan.Result, error) {
	body, err := json.Marshal(analyzeRequest{RepoPath: root})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeUnavailable, "remote analyzer request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Newf(errs.CodeUnavailable, "remote analyzer returned %s", resp.Status)
	}

	var payload analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding remote analyzer response: %w", err)
	}

	res := &scan.Result{
		Modules: make(map[string][]string, len(payload.Modules)),
		Classes: make(map[string]string),
	}
	for _, m := range payload.Modules {
		res.Modules[m.Name] = m.Imports
	}
	for _, c := range payload.Classes {
		if c.Base == "" {
			continue
		}
		res.Classes[c.Module+":"+c.Name] = c.Base
	}
	res.FilesScanned = len(payload.Modules)
	return res, nil
}
