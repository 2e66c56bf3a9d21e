package objectstore

import (
	"context"
	"fmt"
	"io"

	"filippo.io/age"
)

// Encrypted шифрует объект для age-получателя перед отправкой в next.
// К ключу добавляется суффикс ".age".
type Encrypted struct {
	next      Uploader
	recipient age.Recipient
}

// NewEncrypted принимает публичный X25519-ключ вида "age1..."
func NewEncrypted(next Uploader, recipient string) (*Encrypted, error) {
	r, err := age.ParseX25519Recipient(recipient)
	if err != nil {
		return nil, fmt.Errorf("parse age recipient: %w", err)
	}
	return &Encrypted{next: next, recipient: r}, nil
}

func (e *Encrypted) Put(ctx context.Context, key string, body io.Reader) error {
	pr, pw := io.Pipe()

	go func() {
		pw.CloseWithError(e.encrypt(pw, body))
	}()

	err := e.next.Put(ctx, key+".age", pr)
	// если next вернулся не дочитав, горутина не должна зависнуть на записи
	pr.CloseWithError(io.ErrClosedPipe)
	return err
}

func (e *Encrypted) encrypt(w io.Writer, r io.Reader) error {
	encWriter, err := age.Encrypt(w, e.recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}
