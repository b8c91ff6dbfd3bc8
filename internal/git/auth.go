package git

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"

	"gittrack/pkg/errors"
)

// KeyringService is the OS keyring service under which push tokens are stored
const KeyringService = "gittrack"

// TokenStore keeps per-host push tokens in the OS keyring
type TokenStore struct {
	service string
}

// NewTokenStore creates a token store using the gittrack keyring service
func NewTokenStore() *TokenStore {
	return &TokenStore{service: KeyringService}
}

// Get returns the token for host, "" when none is stored
func (ts *TokenStore) Get(host string) (string, error) {
	token, err := keyring.Get(ts.service, host)
	if stderrors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCredentialStore, "Failed to read token from keyring").
			WithContext("host", host)
	}
	return token, nil
}

// Set stores token for host
func (ts *TokenStore) Set(host, token string) error {
	if host == "" {
		return errors.InputError("host", "must not be empty")
	}
	if token == "" {
		return errors.InputError("token", "must not be empty")
	}
	if err := keyring.Set(ts.service, host, token); err != nil {
		return errors.Wrap(err, errors.ErrCodeCredentialStore, "Failed to store token in keyring").
			WithContext("host", host).
			WithSuggestions("Ensure a keyring or secret service is available for your session")
	}
	return nil
}

// Delete removes the token for host. Deleting a missing token is not an error.
func (ts *TokenStore) Delete(host string) error {
	err := keyring.Delete(ts.service, host)
	if err != nil && !stderrors.Is(err, keyring.ErrNotFound) {
		return errors.Wrap(err, errors.ErrCodeCredentialStore, "Failed to delete token from keyring").
			WithContext("host", host)
	}
	return nil
}

// AuthResolver picks a transport auth method for a remote URL
type AuthResolver struct {
	tokens *TokenStore
	home   string
	getenv func(string) string
	log    logrus.FieldLogger
}

// NewAuthResolver creates a resolver consulting env, keyring and SSH keys
func NewAuthResolver(tokens *TokenStore, log logrus.FieldLogger) *AuthResolver {
	home, _ := os.UserHomeDir()
	return &AuthResolver{
		tokens: tokens,
		home:   home,
		getenv: os.Getenv,
		log:    log,
	}
}

// ForURL returns the auth method for gitURL. A nil result means no
// credentials were found and the push is attempted anonymously.
func (a *AuthResolver) ForURL(gitURL string) transport.AuthMethod {
	ep := parseRemote(gitURL)
	if ep == nil {
		a.log.WithField("url", gitURL).Debug("unparseable remote url")
		return nil
	}

	switch ep.Protocol {
	case protocolSSH:
		return a.sshAuth(sshUser(ep))
	case protocolHTTPS, protocolHTTP:
		return a.httpsAuth(ep.Host)
	default:
		return nil
	}
}

func (a *AuthResolver) sshAuth(user string) transport.AuthMethod {
	if auth, err := ssh.NewSSHAgentAuth(user); err == nil {
		a.log.WithField("user", user).Debug("using ssh agent")
		return auth
	}

	for _, name := range []string{"id_ed25519", "id_rsa", "id_ecdsa"} {
		keyPath := filepath.Join(a.home, ".ssh", name)
		if _, err := os.Stat(keyPath); err != nil {
			continue
		}
		auth, err := ssh.NewPublicKeysFromFile(user, keyPath, "")
		if err == nil {
			a.log.WithFields(logrus.Fields{"key": keyPath, "user": user}).Debug("using ssh key")
			return auth
		}
	}
	return nil
}

func (a *AuthResolver) httpsAuth(host string) transport.AuthMethod {
	username := a.getenv("GIT_USERNAME")
	password := a.getenv("GIT_PASSWORD")
	if username != "" && password != "" {
		a.log.Debug("using GIT_USERNAME/GIT_PASSWORD")
		return &http.BasicAuth{Username: username, Password: password}
	}

	if token := a.getenv("GITHUB_TOKEN"); token != "" {
		a.log.Debug("using GITHUB_TOKEN")
		return &http.BasicAuth{Username: "token", Password: token}
	}

	if a.tokens != nil && host != "" {
		token, err := a.tokens.Get(host)
		if err != nil {
			a.log.WithError(err).Warn("keyring lookup failed")
			return nil
		}
		if token != "" {
			a.log.WithField("host", host).Debug("using keyring token")
			return &http.BasicAuth{Username: "token", Password: token}
		}
	}
	return nil
}
