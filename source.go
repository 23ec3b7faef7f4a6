package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/folio/utils"
	"github.com/charmbracelet/log"
)

const (
	protoGithub = "github://"
	protoGitlab = "gitlab://"
	protoHTTPS  = "https://"

	fetchTimeout = 30 * time.Second
)

var readmeNames = []string{"README.md", "README", "Readme.md", "Readme", "readme.md", "readme"}

// source provides a readable markdown source.
type source struct {
	reader io.ReadCloser
	URL    string
}

// path returns the local file path of the source, or an empty string for
// stdin and remote sources.
func (s *source) path() string {
	if s.URL == "" || isURL(s.URL) {
		return ""
	}
	return s.URL
}

// sourceFromArg parses an argument and creates a readable source for it.
func sourceFromArg(ctx context.Context, arg string) (*source, error) {
	// from stdin
	if arg == "-" {
		return &source{reader: io.NopCloser(os.Stdin)}, nil
	}

	// a GitHub or GitLab repository (even without the protocol):
	src, err := readmeURL(ctx, arg)
	if src != nil || err != nil {
		return src, err
	}

	// HTTP(S) URLs:
	if isURL(arg) {
		u, err := url.ParseRequestURI(arg)
		if err != nil {
			return nil, err
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("%s is not a supported protocol", u.Scheme)
		}
		return fetch(ctx, u.String())
	}

	// a directory:
	if len(arg) == 0 {
		// use the current working dir if no argument was supplied
		arg = "."
	}
	st, err := os.Stat(arg)
	if err == nil && st.IsDir() {
		path, err := findReadme(arg)
		if err != nil {
			return nil, err
		}
		arg = path
	}

	// a file:
	r, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	if !utils.IsMarkdownFile(arg) {
		log.Warn("Source does not look like markdown", "path", arg)
	}
	u, _ := filepath.Abs(arg)
	return &source{r, u}, nil
}

// findReadme walks dir and returns the first README-like file.
func findReadme(dir string) (string, error) {
	errFound := errors.New("source found")
	var found string
	err := filepath.WalkDir(dir, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		for _, v := range readmeNames {
			if strings.EqualFold(filepath.Base(path), v) {
				found = path
				return errFound
			}
		}
		return nil
	})
	if found != "" {
		return found, nil
	}
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}
	return "", errors.New("missing markdown source")
}

func isURL(path string) bool {
	_, err := url.ParseRequestURI(path)
	return err == nil && strings.Contains(path, "://")
}

// readmeURL resolves GitHub and GitLab repository references to their
// README. It returns nil for anything else.
func readmeURL(ctx context.Context, path string) (*source, error) {
	switch {
	case strings.HasPrefix(path, protoGithub):
		if u := repoURL("github.com", strings.TrimPrefix(path, protoGithub)); u != nil {
			return readmeURL(ctx, u.String())
		}
		return nil, nil
	case strings.HasPrefix(path, protoGitlab):
		if u := repoURL("gitlab.com", strings.TrimPrefix(path, protoGitlab)); u != nil {
			return readmeURL(ctx, u.String())
		}
		return nil, nil
	}

	if !strings.HasPrefix(path, "github.com/") && !strings.HasPrefix(path, "gitlab.com/") &&
		!strings.HasPrefix(path, protoHTTPS) {
		return nil, nil
	}
	if !strings.HasPrefix(path, protoHTTPS) {
		path = protoHTTPS + path
	}
	u, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("unable to parse url: %w", err)
	}
	owner, repo, ok := ownerRepo(u)
	if !ok {
		return nil, nil
	}

	switch u.Hostname() {
	case "github.com":
		return findGitHubREADME(ctx, owner, repo)
	case "gitlab.com":
		return findGitLabREADME(ctx, owner, repo)
	}
	return nil, nil
}

// repoURL builds the web URL of an "owner/repo" reference.
func repoURL(host, ref string) *url.URL {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		// custom hostnames are not supported yet
		return nil
	}
	return &url.URL{Scheme: "https", Host: host, Path: "/" + ref}
}

func ownerRepo(u *url.URL) (string, string, bool) {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// findGitHubREADME asks the GitHub API where the README of a repository is.
func findGitHubREADME(ctx context.Context, owner, repo string) (*source, error) {
	var result struct {
		DownloadURL string `json:"download_url"`
	}
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s/readme", owner, repo)
	if err := getJSON(ctx, apiURL, &result); err != nil {
		return nil, fmt.Errorf("can't find README in GitHub repository: %w", err)
	}
	return fetch(ctx, result.DownloadURL)
}

// findGitLabREADME asks the GitLab API where the README of a project is.
func findGitLabREADME(ctx context.Context, owner, repo string) (*source, error) {
	var result struct {
		ReadmeURL string `json:"readme_url"`
	}
	apiURL := "https://gitlab.com/api/v4/projects/" + url.QueryEscape(owner+"/"+repo)
	if err := getJSON(ctx, apiURL, &result); err != nil {
		return nil, fmt.Errorf("can't find README in GitLab repository: %w", err)
	}
	return fetch(ctx, strings.Replace(result.ReadmeURL, "/blob/", "/raw/", 1))
}

func getJSON(ctx context.Context, u string, v any) error {
	src, err := fetch(ctx, u)
	if err != nil {
		return err
	}
	defer src.reader.Close() //nolint:errcheck
	if err := json.NewDecoder(src.reader).Decode(v); err != nil {
		return fmt.Errorf("unable to parse json: %w", err)
	}
	return nil
}

// fetch issues a GET request. The caller closes the returned source.
func fetch(ctx context.Context, u string) (*source, error) {
	if u == "" {
		return nil, errors.New("empty url")
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	log.Debug("Fetching", "url", u)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("unable to get url: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
	}
	return &source{reader: cancelOnClose{resp.Body, cancel}, URL: u}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}
