package pemfile

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/zond/grue"

	gossh "golang.org/x/crypto/ssh"
)

const (
	DefaultBits = 4096
)

type KeyParams struct {
	KeyPath       string
	SSHPubKeyPath string
	// Bits is the RSA key size, DefaultBits if zero.
	Bits int
}

func (k KeyParams) Generate() error {
	bits := k.Bits
	if bits == 0 {
		bits = DefaultBits
	}
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return grue.WithStack(err)
	}
	keyBytes := x509.MarshalPKCS1PrivateKey(privateKey)

	if err := os.WriteFile(k.KeyPath, pem.EncodeToMemory(
		&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: keyBytes,
		}),
		0600,
	); err != nil {
		return grue.WithStack(err)
	}

	pub, err := gossh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return grue.WithStack(err)
	}
	if err := os.WriteFile(k.SSHPubKeyPath, gossh.MarshalAuthorizedKey(pub), 0600); err != nil {
		return grue.WithStack(err)
	}
	return nil
}

// Ensure generates the key pair unless the private key exists, and returns the private key PEM.
func (k KeyParams) Ensure() (pemBytes []byte, created bool, err error) {
	if _, err := os.Stat(k.KeyPath); os.IsNotExist(err) {
		if err := k.Generate(); err != nil {
			return nil, false, err
		}
		created = true
	} else if err != nil {
		return nil, false, grue.WithStack(err)
	}
	if pemBytes, err = os.ReadFile(k.KeyPath); err != nil {
		return nil, false, grue.WithStack(err)
	}
	return pemBytes, created, nil
}

// Signer parses the private key PEM.
func Signer(pemBytes []byte) (gossh.Signer, error) {
	signer, err := gossh.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, grue.WithStack(err)
	}
	return signer, nil
}
