package argon2id

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var testParams = Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestParse(t *testing.T) {
	salt := []byte("0123456789abcdef")
	encoded := WithSalt("Kladdkaka#2024", testParams, salt).String()
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("encoded = %q", encoded)
	}

	h, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if h.Params != testParams {
		t.Errorf("Params = %+v, want %+v", h.Params, testParams)
	}
	if !bytes.Equal(h.Salt, salt) {
		t.Errorf("Salt = %q", h.Salt)
	}
	if h.String() != encoded {
		t.Errorf("String() = %q, want %q", h.String(), encoded)
	}
}

func TestVerify(t *testing.T) {
	encoded, err := New("Kladdkaka#2024", testParams)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ok, err := Verify("Kladdkaka#2024", encoded)
	if err != nil || !ok {
		t.Errorf("Verify(correct) = %v, %v", ok, err)
	}
	ok, err = Verify("kladdkaka#2024", encoded)
	if err != nil || ok {
		t.Errorf("Verify(wrong) = %v, %v", ok, err)
	}

	other, err := New("Kladdkaka#2024", testParams)
	if err != nil {
		t.Fatal(err)
	}
	if other == encoded {
		t.Error("two hashes of the same password share a salt")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{name: "too few sections", in: "$argon2id$v=19$m=1,t=1,p=1$abc", want: ErrInvalidHash},
		{name: "wrong algorithm", in: "$argon2i$v=19$m=1,t=1,p=1$abc$def", want: ErrInvalidHash},
		{name: "wrong version", in: "$argon2id$v=16$m=1,t=1,p=1$abc$def", want: ErrIncompatibleVersion},
		{name: "bad params", in: "$argon2id$v=19$m=x,t=1,p=1$abc$def", want: ErrInvalidHash},
		{name: "bad salt", in: "$argon2id$v=19$m=1,t=1,p=1$!!$def", want: ErrInvalidHash},
		{name: "garbage", in: "garbage", want: ErrInvalidHash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
			if _, err := Verify("x", tt.in); err == nil {
				t.Error("Verify() should fail")
			}
		})
	}
}
