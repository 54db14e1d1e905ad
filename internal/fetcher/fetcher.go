// Package fetcher is the socket-level HTTP client the crawler uses: open a
// raw TCP connection (wrapped in TLS for https URIs), issue a manual
// HTTP/1.1 GET, and return the body only for a 200 text/html response,
// following redirects up to a budget.
package fetcher

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// bufferSize sizes both the TCP socket's send/recv buffers and the
// userspace bufio.Reader used to parse the response.
const (
	readTimeout   = 3 * time.Second
	bufferSize    = 32 * 1024
	defaultBudget = 3
)

// statusLineKey is the sentinel header key under which the parsed status
// line's numeric code is stored, since the status line itself has no
// header name.
const statusLineKey = ""

// Fetch retrieves the HTML body at rawURL, following up to defaultBudget
// redirects. It returns ("", false) on any I/O error, malformed URI, or
// non-text/html response — the crawler treats that as "nothing to index".
func Fetch(rawURL string) (string, bool) {
	return fetch(rawURL, defaultBudget)
}

func fetch(rawURL string, budget int) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}
	headers, body, ok := fetchOnce(u)
	if !ok {
		return "", false
	}
	status, _ := strconv.Atoi(headers[statusLineKey])
	if status >= 300 && status < 400 {
		if budget <= 0 {
			return "", false
		}
		location := headers["location"]
		if location == "" {
			return "", false
		}
		resolved, err := u.Parse(location)
		if err != nil {
			return "", false
		}
		return fetch(resolved.String(), budget-1)
	}
	if status != 200 {
		return "", false
	}
	if !strings.HasPrefix(headers["content-type"], "text/html") {
		return "", false
	}
	return body, true
}

// fetchOnce opens one TCP connection, issues one GET, and returns the
// lowercased response headers (status line under statusLineKey) and the
// raw body bytes read so far (only meaningful when the caller decides to
// keep them).
func fetchOnce(u *url.URL) (map[string]string, string, bool) {
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}

	rawConn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), readTimeout)
	if err != nil {
		return nil, "", false
	}
	defer rawConn.Close()

	if tcp, ok := rawConn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
		_ = tcp.SetReadBuffer(bufferSize)
		_ = tcp.SetWriteBuffer(bufferSize)
	}
	_ = rawConn.SetReadDeadline(time.Now().Add(readTimeout))

	var conn net.Conn = rawConn
	if u.Scheme == "https" {
		tlsConn := tls.Client(rawConn, &tls.Config{ServerName: host})
		if err := tlsConn.Handshake(); err != nil {
			return nil, "", false
		}
		conn = tlsConn
	}

	path := u.RequestURI()
	if path == "" {
		path = "/"
	}
	request := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\nUser-Agent: lexicon-crawler\r\n\r\n", path, u.Host)
	if _, err := conn.Write([]byte(request)); err != nil {
		return nil, "", false
	}

	reader := bufio.NewReaderSize(conn, bufferSize)
	headers, err := readHeaders(reader)
	if err != nil {
		return nil, "", false
	}
	body, err := io.ReadAll(reader)
	if err != nil && len(body) == 0 {
		return headers, "", false
	}
	return headers, string(body), true
}

// readHeaders reads the status line and header block, lowercasing header
// keys, and stores the status code under statusLineKey.
func readHeaders(r *bufio.Reader) (map[string]string, error) {
	headers := make(map[string]string)
	statusLine, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(strings.TrimSpace(statusLine), " ", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("fetcher: malformed status line %q", statusLine)
	}
	headers[statusLineKey] = parts[1]

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		headers[key] = value
	}
	return headers, nil
}
