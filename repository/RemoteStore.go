package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"bookStore/models"

	"github.com/sethvargo/go-retry"
)

// RemoteStore talks to the hosted JSON resource store (books, banners,
// users, purchases). Every payload is a plain JSON object; every non-2xx
// response is a failure.
type RemoteStore struct {
	base   string
	client *http.Client
}

func NewRemoteStore(baseURL string) (*RemoteStore, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL must be non-empty")
	}
	return &RemoteStore{
		base:   baseURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Get fetches path and decodes the body into out. Reads are idempotent,
// so transient failures (network errors, 5xx) are retried with a short
// fibonacci backoff before giving up.
func (rs *RemoteStore) Get(path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rs.base+path, nil)
		if err != nil {
			return err
		}
		resp, err := rs.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return models.ErrNotFoundError
		case resp.StatusCode >= 500:
			return retry.RetryableError(errors.New(resp.Status))
		case resp.StatusCode >= 300:
			return errors.New(resp.Status)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFoundError) {
			return models.ErrNotFoundError
		}
		log.Printf("RemoteStore.Get %s: %v", path, err)
		return models.ErrServerError
	}
	return nil
}

// Post creates a resource. Never retried: creates are not idempotent.
func (rs *RemoteStore) Post(path string, body interface{}, out interface{}) error {
	return rs.write(http.MethodPost, path, body, out)
}

// Put replaces a resource in full.
func (rs *RemoteStore) Put(path string, body interface{}, out interface{}) error {
	return rs.write(http.MethodPut, path, body, out)
}

// Patch applies a partial update.
func (rs *RemoteStore) Patch(path string, body interface{}, out interface{}) error {
	return rs.write(http.MethodPatch, path, body, out)
}

func (rs *RemoteStore) Delete(path string) error {
	return rs.write(http.MethodDelete, path, nil, nil)
}

func (rs *RemoteStore) write(method, path string, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var payload io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			log.Printf("RemoteStore.%s %s: Marshal err: %v", method, path, err)
			return models.ErrServerError
		}
		payload = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, rs.base+path, payload)
	if err != nil {
		log.Printf("RemoteStore.%s %s: %v", method, path, err)
		return models.ErrServerError
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := rs.client.Do(req)
	if err != nil {
		log.Printf("RemoteStore.%s %s: %v", method, path, err)
		return models.ErrServerError
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.ErrNotFoundError
	case resp.StatusCode >= 300:
		log.Printf("RemoteStore.%s %s: %s", method, path, resp.Status)
		return models.ErrServerError
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			log.Printf("RemoteStore.%s %s: Unmarshal err: %v", method, path, err)
			return models.ErrServerError
		}
	}
	return nil
}
