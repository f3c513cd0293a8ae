package githubstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v66/github"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config identifies the repository holding the data files.
type Config struct {
	Token   string
	Owner   string
	Repo    string
	Branch  string
	BaseURL string
	Timeout time.Duration
}

// ContentsStore keeps each collection as a JSON file in a repository. The
// blob sha is the document version and every write is a commit.
type ContentsStore struct {
	owner  string
	repo   string
	branch string
	base   *url.URL
	http   *http.Client

	mu     sync.RWMutex
	token  string
	client *github.Client
}

func New(cfg Config) (*ContentsStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	s := &ContentsStore{
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		branch: cfg.Branch,
		http:   &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		raw := cfg.BaseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("github base url: %w", err)
		}
		s.base = u
	}
	s.SetToken(cfg.Token)
	return s, nil
}

// SetToken replaces the access token. An empty token leaves the store
// unconfigured.
func (s *ContentsStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if token == "" {
		s.client = nil
		return
	}
	client := github.NewClient(s.http).WithAuthToken(token)
	if s.base != nil {
		client.BaseURL = s.base
	}
	s.client = client
}

func (s *ContentsStore) ClearToken() {
	s.SetToken("")
}

// Configured reports whether a token and a target repository are set.
func (s *ContentsStore) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client != nil && s.owner != "" && s.repo != ""
}

func (s *ContentsStore) gh() (*github.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil || s.owner == "" || s.repo == "" {
		return nil, domain.ErrRemoteNotConfigured
	}
	return s.client, nil
}

func (s *ContentsStore) Read(ctx context.Context, path string) (*ports.Document, error) {
	client, err := s.gh()
	if err != nil {
		return nil, err
	}

	file, _, _, err := client.Repositories.GetContents(ctx, s.owner, s.repo, path, &github.RepositoryContentGetOptions{Ref: s.branch})
	if err != nil {
		return nil, s.mapError(path, "", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrRemoteUnavailable, path)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrRemoteUnavailable, path, err)
	}
	return &ports.Document{Content: []byte(content), Version: file.GetSHA()}, nil
}

// Write creates the file when version is empty and otherwise updates the
// blob whose sha is version.
func (s *ContentsStore) Write(ctx context.Context, path string, content []byte, message, version string) (string, error) {
	client, err := s.gh()
	if err != nil {
		return "", err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
	}
	if s.branch != "" {
		opts.Branch = github.String(s.branch)
	}

	var res *github.RepositoryContentResponse
	if version == "" {
		res, _, err = client.Repositories.CreateFile(ctx, s.owner, s.repo, path, opts)
	} else {
		opts.SHA = github.String(version)
		res, _, err = client.Repositories.UpdateFile(ctx, s.owner, s.repo, path, opts)
	}
	if err != nil {
		return "", s.mapError(path, version, err)
	}
	if res == nil || res.Content == nil {
		return "", fmt.Errorf("%w: write %s: empty response", domain.ErrRemoteUnavailable, path)
	}
	return res.Content.GetSHA(), nil
}

func (s *ContentsStore) Delete(ctx context.Context, path, message, version string) error {
	client, err := s.gh()
	if err != nil {
		return err
	}

	if version == "" {
		doc, err := s.Read(ctx, path)
		if err != nil {
			return err
		}
		version = doc.Version
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		SHA:     github.String(version),
	}
	if s.branch != "" {
		opts.Branch = github.String(s.branch)
	}
	if _, _, err := client.Repositories.DeleteFile(ctx, s.owner, s.repo, path, opts); err != nil {
		return s.mapError(path, version, err)
	}
	return nil
}

// Ping checks that the repository is reachable with the current token.
func (s *ContentsStore) Ping(ctx context.Context) error {
	client, err := s.gh()
	if err != nil {
		return err
	}
	if _, _, err := client.Repositories.Get(ctx, s.owner, s.repo); err != nil {
		return s.mapError("", "", err)
	}
	return nil
}

func (s *ContentsStore) mapError(path, version string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			if path != "" {
				return fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
			}
		case http.StatusConflict:
			if path != "" {
				return &domain.ConflictError{Path: path, ExpectedVersion: version}
			}
		case http.StatusUnprocessableEntity:
			// A create without a sha is rejected with 422 when the file
			// already exists. With a sha, 422 is a malformed request.
			if path != "" && version == "" {
				return &domain.ConflictError{Path: path, ExpectedVersion: version}
			}
		}
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrRemoteUnavailable, path, err)
}
