package resolve

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/kazkn/vinted-scout/internal/metrics"
)

// probeUserAgent has to look like a real browser or the edge serves the
// challenge page instead of the redirect.
const probeUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// probeState names each step of the tunneled probe sequence. Errors carry
// the state they occurred in, which makes every failure injection point
// visible in logs and tests.
type probeState string

const (
	stateConnecting        probeState = "connecting"
	stateTunnelEstablished probeState = "tunnel-established"
	stateTLSHandshaking    probeState = "tls-handshaking"
	stateRequestSent       probeState = "request-sent"
	stateAwaitingClose     probeState = "awaiting-close"
	stateDone              probeState = "done"
	stateFailed            probeState = "failed"
)

// locationPattern scrapes the Location header out of a raw response,
// case-insensitive on the header name.
var locationPattern = regexp.MustCompile(`(?i)\r\nlocation:[ \t]*([^\r\n]+)`)

// Prober captures the HTTP redirect target for an item URL without loading
// the page (a full load triggers the anti-bot challenge). With a forward
// proxy configured it speaks CONNECT + TLS by hand; without one it issues a
// plain request with redirect-following disabled.
type Prober struct {
	proxy   *url.URL // nil means direct mode
	timeout time.Duration
	client  *http.Client
}

// NewProber builds a prober. proxyURL is optional and has the form
// scheme://[user:pass@]host:port; timeout bounds the whole probe sequence.
func NewProber(proxyURL string, timeout time.Duration) (*Prober, error) {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	p := &Prober{
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		if u.Hostname() == "" {
			return nil, fmt.Errorf("invalid proxy URL: missing host")
		}
		p.proxy = u
	}
	return p, nil
}

// Probe returns the redirect Location for itemURL, or "" when the response
// carries none. All failures are recoverable probe failures; the caller
// decides what to do next.
func (p *Prober) Probe(ctx context.Context, itemURL string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.ProbeDuration.Observe(time.Since(start).Seconds())
	}()

	if p.proxy == nil {
		return p.probeDirect(ctx, itemURL)
	}

	location, state, err := p.probeTunnel(ctx, itemURL)
	if err != nil {
		return "", fmt.Errorf("probe %s in state %s: %w", stateFailed, state, err)
	}
	if state != stateDone {
		return "", fmt.Errorf("probe ended in unexpected state %s", state)
	}
	return location, nil
}

// probeDirect issues a normal request with redirects disabled and reads the
// Location header off the response.
func (p *Prober) probeDirect(ctx context.Context, itemURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, itemURL, nil)
	if err != nil {
		return "", fmt.Errorf("probe request: %w", err)
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("probe request: %w", err)
	}
	defer resp.Body.Close()

	return resp.Header.Get("Location"), nil
}

// probeTunnel walks the CONNECT tunnel state machine and returns the state
// it stopped in. One deadline governs the whole sequence, and the proxy
// socket is closed on every exit path.
func (p *Prober) probeTunnel(ctx context.Context, itemURL string) (string, probeState, error) {
	state := stateConnecting

	target, err := url.Parse(itemURL)
	if err != nil {
		return "", state, err
	}

	dialer := &net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", proxyAddr(p.proxy))
	if err != nil {
		return "", state, err
	}
	defer conn.Close()

	// Single timeout for CONNECT, TLS handshake, request and read.
	if err := conn.SetDeadline(time.Now().Add(p.timeout)); err != nil {
		return "", state, err
	}

	if _, err := conn.Write([]byte(connectRequest(target.Hostname(), p.proxy))); err != nil {
		return "", state, err
	}
	header, err := readHeaderBlock(conn)
	if err != nil {
		return "", state, err
	}
	if !connectAccepted(header) {
		return "", state, fmt.Errorf("proxy refused tunnel: %s", firstLine(header))
	}
	state = stateTunnelEstablished

	tlsConn := tls.Client(conn, &tls.Config{ServerName: target.Hostname()})
	state = stateTLSHandshaking
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return "", state, err
	}

	if _, err := tlsConn.Write([]byte(probeRequest(target))); err != nil {
		return "", state, err
	}
	state = stateRequestSent

	state = stateAwaitingClose
	raw, err := io.ReadAll(tlsConn)
	if len(raw) == 0 && err != nil {
		return "", state, err
	}
	state = stateDone

	return scrapeLocation(string(raw)), state, nil
}

// proxyAddr returns host:port for the proxy, defaulting to 8000 when the
// URL carries no port.
func proxyAddr(proxy *url.URL) string {
	port := proxy.Port()
	if port == "" {
		port = "8000"
	}
	return net.JoinHostPort(proxy.Hostname(), port)
}

// connectRequest renders the CONNECT request that opens the tunnel,
// including basic proxy credentials when present in the proxy URL.
func connectRequest(targetHost string, proxy *url.URL) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CONNECT %s:443 HTTP/1.1\r\n", targetHost)
	fmt.Fprintf(&b, "Host: %s:443\r\n", targetHost)
	if user := proxy.User; user != nil {
		pass, _ := user.Password()
		cred := base64.StdEncoding.EncodeToString([]byte(user.Username() + ":" + pass))
		fmt.Fprintf(&b, "Proxy-Authorization: Basic %s\r\n", cred)
	}
	b.WriteString("\r\n")
	return b.String()
}

// probeRequest renders the minimal GET sent once the tunnel is up.
// Connection: close makes the peer end the stream once the response is out,
// which is the read-termination signal.
func probeRequest(target *url.URL) string {
	path := target.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nUser-Agent: %s\r\nConnection: close\r\n\r\n",
		path, target.Hostname(), probeUserAgent)
}

// readHeaderBlock reads from conn until the blank line ending an HTTP
// header block.
func readHeaderBlock(conn net.Conn) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		if _, err := conn.Read(buf); err != nil {
			return "", err
		}
		b.WriteByte(buf[0])
		if strings.HasSuffix(b.String(), "\r\n\r\n") {
			return b.String(), nil
		}
		if b.Len() > 16*1024 {
			return "", fmt.Errorf("oversized proxy response header")
		}
	}
}

// connectAccepted reports whether the CONNECT status line signals an open
// tunnel.
func connectAccepted(header string) bool {
	fields := strings.Fields(firstLine(header))
	return len(fields) >= 2 && fields[1] == "200"
}

func firstLine(s string) string {
	if i := strings.Index(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// scrapeLocation pulls the Location header value out of a raw HTTP
// response. Nothing else in the response is parsed.
func scrapeLocation(raw string) string {
	m := locationPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
