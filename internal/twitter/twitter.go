// Package twitter posts status updates, optionally with one image, to X/Twitter.
package twitter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultAPIBase    = "https://api.twitter.com"
	DefaultUploadBase = "https://upload.twitter.com"

	defaultTimeout = 30 * time.Second
	imageMIMEType  = "image/png"
)

// ErrProviderCall marks any failed call to the Twitter API.
var ErrProviderCall = errors.New("twitter provider call failed")

// Credentials are the OAuth 1.0a user-context secrets.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

type Client struct {
	http       *resty.Client
	apiBase    string
	uploadBase string
}

type Option func(*options)

type options struct {
	httpClient *http.Client
	apiBase    string
	uploadBase string
	timeout    time.Duration
}

// WithHTTPClient replaces the OAuth-signing HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithBaseURLs points the client at other API and upload hosts.
func WithBaseURLs(apiBase, uploadBase string) Option {
	return func(o *options) {
		o.apiBase = apiBase
		o.uploadBase = uploadBase
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func NewClient(ctx context.Context, creds Credentials, opts ...Option) *Client {
	o := options{
		apiBase:    DefaultAPIBase,
		uploadBase: DefaultUploadBase,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
		token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
		hc = config.Client(ctx, token)
	}

	rc := resty.NewWithClient(hc).
		SetTimeout(o.timeout).
		SetHeader("User-Agent", "influencer-agent/1.0")

	return &Client{
		http:       rc,
		apiBase:    o.apiBase,
		uploadBase: o.uploadBase,
	}
}

type mediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type createTweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type createTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// PostUpdate publishes text, uploading image first when one is given, and
// returns the new tweet's ID.
func (c *Client) PostUpdate(ctx context.Context, text string, image []byte) (string, error) {
	var mediaIDs []string
	if len(image) > 0 {
		mediaID, err := c.UploadMedia(ctx, image)
		if err != nil {
			return "", err
		}
		mediaIDs = append(mediaIDs, mediaID)
	}
	return c.CreateTweet(ctx, text, mediaIDs...)
}

// UploadMedia uploads a PNG via the v1.1 media endpoint and returns its media ID.
func (c *Client) UploadMedia(ctx context.Context, image []byte) (string, error) {
	var out mediaUploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("media", "image.png", imageMIMEType, bytes.NewReader(image)).
		SetResult(&out).
		Post(c.uploadBase + "/1.1/media/upload.json")
	if err != nil {
		return "", fmt.Errorf("%w: media upload: %w", ErrProviderCall, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: media upload: status %d: %s", ErrProviderCall, resp.StatusCode(), resp.String())
	}
	if out.MediaIDString == "" {
		return "", fmt.Errorf("%w: media upload returned no media_id_string", ErrProviderCall)
	}
	return out.MediaIDString, nil
}

// CreateTweet creates a v2 tweet referencing any already uploaded media.
func (c *Client) CreateTweet(ctx context.Context, text string, mediaIDs ...string) (string, error) {
	body := createTweetRequest{Text: text}
	if len(mediaIDs) > 0 {
		body.Media = &tweetMedia{MediaIDs: mediaIDs}
	}

	var out createTweetResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		Post(c.apiBase + "/2/tweets")
	if err != nil {
		return "", fmt.Errorf("%w: create tweet: %w", ErrProviderCall, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: create tweet: status %d: %s", ErrProviderCall, resp.StatusCode(), resp.String())
	}
	if out.Data.ID == "" {
		return "", fmt.Errorf("%w: create tweet returned no id", ErrProviderCall)
	}
	return out.Data.ID, nil
}
