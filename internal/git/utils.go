package git

import (
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Remote URL protocols as reported by go-git endpoints
const (
	protocolSSH   = "ssh"
	protocolHTTP  = "http"
	protocolHTTPS = "https"
)

// defaultSSHUser is used when an SSH remote names no user
const defaultSSHUser = "git"

// parseRemote parses any remote form git accepts: URLs, scp-style
// user@host:path and local paths. Nil means it could not be parsed.
func parseRemote(gitURL string) *transport.Endpoint {
	ep, err := transport.NewEndpoint(gitURL)
	if err != nil {
		return nil
	}
	return ep
}

// IsSSHURL checks if a git URL is using SSH protocol
func IsSSHURL(gitURL string) bool {
	ep := parseRemote(gitURL)
	return ep != nil && ep.Protocol == protocolSSH
}

// IsHTTPSURL checks if a git URL is using HTTP(S) protocol
func IsHTTPSURL(gitURL string) bool {
	ep := parseRemote(gitURL)
	return ep != nil && (ep.Protocol == protocolHTTPS || ep.Protocol == protocolHTTP)
}

// HostFromURL extracts the host of a remote URL, "" for local paths
func HostFromURL(gitURL string) string {
	ep := parseRemote(gitURL)
	if ep == nil || ep.Protocol == "file" {
		return ""
	}
	return ep.Host
}

// sshUser returns the user named by an SSH endpoint, git when there is none
func sshUser(ep *transport.Endpoint) string {
	if ep.User != "" {
		return ep.User
	}
	return defaultSSHUser
}
