package synapse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/pkg/signature"
)

// Client dispatches signed review synapses to miner axons.
type Client struct {
	httpClient *resty.Client
	signer     signature.Signer
	cfg        Config
}

func NewClient(cfg Config, signer signature.Signer) *Client {
	cli := resty.New()
	cli.SetTimeout(cfg.ClientTimeout)
	cli.SetRetryCount(cfg.RetryMax)
	cli.SetRetryWaitTime(cfg.RetryWait)
	cli.SetRetryMaxWaitTime(cfg.RetryWait * 2)

	return &Client{httpClient: cli, signer: signer, cfg: cfg}
}

// GetReviews sends a reviews synapse to the axon at url and decodes the reply.
func (c *Client) GetReviews(ctx context.Context, url string, req ReviewsRequest) (ReviewsResponse, error) {
	var resp ReviewsResponse

	b, err := sonic.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("marshal reviews request: %w", err)
	}

	ts := time.Now().Unix()
	sig, err := c.signer.Sign(AuthMessage(c.signer.Address(), ts))
	if err != nil {
		return resp, fmt.Errorf("sign request: %w", err)
	}

	r := c.httpClient.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept-Encoding", "zstd").
		SetHeader("x-hotkey", c.signer.Address()).
		SetHeader("x-signature", sig).
		SetHeader("x-timestamp", strconv.FormatInt(ts, 10)).
		SetBody(b)

	restyResp, err := r.Post(url)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("send reviews request failed")
		return resp, err
	}

	if restyResp.StatusCode() >= 400 {
		return resp, fmt.Errorf("bad status %d: %s", restyResp.StatusCode(), string(restyResp.Body()))
	}

	data := restyResp.Body()
	if strings.Contains(strings.ToLower(restyResp.Header().Get("Content-Encoding")), "zstd") {
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return resp, fmt.Errorf("zstd: failed to create reader: %w", err)
		}
		defer zr.Close()

		out, err := io.ReadAll(zr)
		if err != nil {
			return resp, fmt.Errorf("zstd: failed to decompress response: %w", err)
		}
		data = out
	}

	if err := sonic.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp, nil
}
