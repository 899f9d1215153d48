package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/gomega"
)

func TestJWT(t *testing.T) {
	RegisterTestingT(t)

	signer := &JWT{Secret: "test-secret"}

	t.Run("should round trip the session id", func(t *testing.T) {
		token, err := signer.CreateToken("session-1", time.Hour)
		Expect(err).To(BeNil())

		id, err := signer.VerifyToken(token)

		Expect(err).To(BeNil())
		Expect(id).To(Equal("session-1"))
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		other := &JWT{Secret: "other-secret"}
		token, _ := other.CreateToken("session-1", time.Hour)

		_, err := signer.VerifyToken(token)

		Expect(err).To(MatchError(ErrInvalidToken))
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		token, _ := signer.CreateToken("session-1", -time.Minute)

		_, err := signer.VerifyToken(token)

		Expect(err).To(MatchError(ErrInvalidToken))
	})

	t.Run("should reject the none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			ID:        "session-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		unsigned, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

		_, err := signer.VerifyToken(unsigned)

		Expect(err).To(MatchError(ErrInvalidToken))
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := signer.VerifyToken("not.a.token")

		Expect(err).To(MatchError(ErrInvalidToken))
	})
}
