package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/byterings/gus/internal/platform"
	"golang.org/x/crypto/ssh"
)

// KeyPrefix names keys generated for gus profiles
const KeyPrefix = "gus_"

var ErrKeyNotFound = errors.New("key file does not exist")

// Path returns where a generated key for profileName lives inside sshDir
func Path(sshDir, profileName string) string {
	return filepath.Join(sshDir, KeyPrefix+profileName)
}

// ValidateKeyPath checks that an SSH key exists and is a regular file.
// It returns the path with ~ expanded.
func ValidateKeyPath(path string) (string, error) {
	expandedPath, err := platform.ExpandTilde(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(expandedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrKeyNotFound, expandedPath)
		}
		return "", fmt.Errorf("failed to access key file: %w", err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", expandedPath)
	}

	return expandedPath, nil
}

// HasInsecurePermissions reports whether other users can read the key
func HasInsecurePermissions(path string) bool {
	ok, err := platform.CheckFilePermissions(path)
	return err == nil && !ok
}

// Fingerprint returns the SHA256 fingerprint of the public half of a key,
// read from <privateKeyPath>.pub
func Fingerprint(privateKeyPath string) (string, error) {
	expanded, err := platform.ExpandTilde(privateKeyPath)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(expanded + ".pub")
	if err != nil {
		return "", fmt.Errorf("failed to read public key: %w", err)
	}

	pub, _, _, _, err := ssh.ParseAuthorizedKey(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}

// Generate creates a new Ed25519 key pair for a profile in ~/.ssh.
// It uses ssh-keygen when available and falls back to the built-in generator.
func Generate(profileName string) (privateKeyPath, publicKeyPath string, err error) {
	sshDir, err := platform.GetSSHDir()
	if err != nil {
		return "", "", err
	}

	if platform.HasCommand("ssh-keygen") {
		return generateSystem(sshDir, profileName)
	}
	return GenerateIn(sshDir, profileName)
}

// GenerateIn writes a new OpenSSH Ed25519 key pair into dir without
// shelling out
func GenerateIn(dir, profileName string) (privateKeyPath, publicKeyPath string, err error) {
	privateKeyPath, publicKeyPath, err = prepare(dir, profileName)
	if err != nil {
		return "", "", err
	}

	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate key: %w", err)
	}

	sshPubKey, err := ssh.NewPublicKey(pubKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert public key: %w", err)
	}

	pemBlock, err := ssh.MarshalPrivateKey(privKey, comment(profileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal private key: %w", err)
	}

	privateKeyFile, err := platform.OpenFileSecure(privateKeyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return "", "", fmt.Errorf("failed to create private key file: %w", err)
	}
	defer privateKeyFile.Close()

	if err := pem.Encode(privateKeyFile, pemBlock); err != nil {
		return "", "", fmt.Errorf("failed to write private key: %w", err)
	}

	publicKeyBytes := ssh.MarshalAuthorizedKey(sshPubKey)
	if err := os.WriteFile(publicKeyPath, publicKeyBytes, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write public key: %w", err)
	}

	return privateKeyPath, publicKeyPath, nil
}

func generateSystem(dir, profileName string) (privateKeyPath, publicKeyPath string, err error) {
	privateKeyPath, publicKeyPath, err = prepare(dir, profileName)
	if err != nil {
		return "", "", err
	}

	cmd := exec.Command("ssh-keygen", "-t", "ed25519", "-f", privateKeyPath, "-N", "", "-C", comment(profileName))
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", "", fmt.Errorf("failed to generate SSH key: %s: %w", string(output), err)
	}

	return privateKeyPath, publicKeyPath, nil
}

func prepare(dir, profileName string) (privateKeyPath, publicKeyPath string, err error) {
	if err := platform.MkdirSecure(dir); err != nil {
		return "", "", fmt.Errorf("failed to create .ssh directory: %w", err)
	}

	privateKeyPath = Path(dir, profileName)
	publicKeyPath = privateKeyPath + ".pub"

	if _, err := os.Stat(privateKeyPath); err == nil {
		return "", "", fmt.Errorf("key already exists at %s", privateKeyPath)
	}
	return privateKeyPath, publicKeyPath, nil
}

func comment(profileName string) string {
	return profileName + "@gus"
}
