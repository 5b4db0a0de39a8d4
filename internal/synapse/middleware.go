package synapse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/tranmanhhung/sn111/pkg/signature"
)

// ZstdMiddleware decompresses request bodies sent with Content-Encoding: zstd
// and compresses responses when the client accepts zstd.
func ZstdMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.Contains(strings.ToLower(c.Get("Content-Encoding")), "zstd") {
			r, err := zstd.NewReader(bytes.NewReader(c.Body()))
			if err != nil {
				log.Error().Err(err).Msg("zstd: failed to create reader for request body")
				return c.Status(fiber.StatusBadRequest).SendString("invalid zstd request body")
			}
			defer r.Close()

			out, err := io.ReadAll(r)
			if err != nil {
				log.Error().Err(err).Msg("zstd: failed to decompress request body")
				return c.Status(fiber.StatusBadRequest).SendString("invalid zstd request body")
			}

			c.Request().SetBody(out)
			c.Request().Header.Set("Content-Length", strconv.Itoa(len(out)))
			c.Request().Header.Del("Content-Encoding")
		}

		if err := c.Next(); err != nil {
			return err
		}

		if strings.Contains(strings.ToLower(c.Get("Accept-Encoding")), "zstd") {
			respBody := c.Response().Body()
			var buf bytes.Buffer
			w, err := zstd.NewWriter(&buf)
			if err != nil {
				log.Error().Err(err).Msg("zstd: failed to create writer for response body")
				return nil
			}
			if _, err := w.Write(respBody); err != nil {
				_ = w.Close()
				log.Error().Err(err).Msg("zstd: failed to compress response body")
				return nil
			}
			_ = w.Close()

			comp := buf.Bytes()
			c.Response().SetBody(comp)
			c.Set("Content-Encoding", "zstd")
			c.Set("Vary", "Accept-Encoding")
			c.Set("Content-Length", strconv.Itoa(len(comp)))
		}

		return nil
	}
}

// AuthMessage builds the canonical message signed into the x-signature header.
func AuthMessage(hotkey string, timestamp int64) string {
	return fmt.Sprintf("%s.%d.%s", hotkey, timestamp, AuthContext)
}

// VerifySignatureMiddleware rejects requests without a fresh, valid sr25519
// signature in the x-signature/x-hotkey/x-timestamp headers. Verification is
// local; no gateway round trip.
func VerifySignatureMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sig := c.Get("x-signature")
		hotkey := c.Get("x-hotkey")
		timestamp := c.Get("x-timestamp") // unix seconds
		if sig == "" || hotkey == "" || timestamp == "" {
			log.Warn().Bool("missing_sig", sig == "").Bool("missing_hotkey", hotkey == "").Msg("missing auth headers")
			return c.Status(fiber.StatusUnauthorized).SendString("missing signature, hotkey or timestamp header")
		}

		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString("invalid timestamp header")
		}
		if time.Since(time.Unix(ts, 0)) > MaxAuthAge {
			log.Warn().Str("hotkey", hotkey).Int64("timestamp", ts).Msg("stale auth timestamp")
			return c.Status(fiber.StatusUnauthorized).SendString("stale timestamp")
		}

		ok, err := signature.Verify(AuthMessage(hotkey, ts), sig, hotkey)
		if err != nil {
			log.Error().Err(err).Str("hotkey", hotkey).Msg("signature verification failed")
			return c.Status(fiber.StatusUnauthorized).SendString("signature verification error")
		}
		if !ok {
			log.Warn().Str("hotkey", hotkey).Msg("invalid signature")
			return c.Status(fiber.StatusUnauthorized).SendString("invalid signature")
		}

		return c.Next()
	}
}
