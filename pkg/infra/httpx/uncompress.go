package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// DecodeBody undoes a Content-Encoding chain such as "gzip, br". Encodings
// are removed in reverse order of application.
func DecodeBody(contentEncoding string, body []byte) ([]byte, error) {
	encodings := strings.Split(contentEncoding, ",")
	for i := len(encodings) - 1; i >= 0; i-- {
		var err error
		switch enc := strings.ToLower(strings.TrimSpace(encodings[i])); enc {
		case "br":
			body, err = io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		case "gzip":
			body, err = readAllClose(gzip.NewReader(bytes.NewReader(body)))
		case "zstd":
			body, err = decodeZstd(body)
		case "deflate":
			body, err = decodeDeflate(body)
		case "", "identity":
		default:
			return nil, fmt.Errorf("unsupported content-encoding: %q", enc)
		}
		if err != nil {
			return nil, err
		}
	}
	return body, nil
}

func readAllClose(r io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	return out, err
}

func decodeZstd(body []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// decodeDeflate accepts zlib wrapped data and falls back to raw deflate.
func decodeDeflate(body []byte) ([]byte, error) {
	if out, err := readAllClose(zlib.NewReader(bytes.NewReader(body))); err == nil {
		return out, nil
	}
	return readAllClose(flate.NewReader(bytes.NewReader(body)), nil)
}
