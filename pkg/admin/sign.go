package admin

import (
	"time"

	"github.com/raywall/book-library-toolkit/cosmosauth"
)

// SignedRequest descreve uma requisição assinada.
type SignedRequest struct {
	cosmosauth.Request
	Token  string
	Header string
}

// SignRequest assina uma requisição e imprime o descritor. Date vazio usa o relógio do Admin.
func (a *Admin) SignRequest(req cosmosauth.Request, key string) (SignedRequest, error) {
	if req.Date == "" {
		req.Date = cosmosauth.FormatDate(a.now())
	}
	token, err := cosmosauth.Sign(req, key)
	if err != nil {
		return SignedRequest{}, err
	}

	signed := SignedRequest{Request: req, Token: token, Header: cosmosauth.HeaderValue(token)}
	a.console.Println("verb:          %s", req.Verb)
	a.console.Println("resource type: %s", req.ResourceType)
	a.console.Println("resource link: %s", req.ResourceLink)
	a.console.Println("x-ms-date:     %s", req.Date)
	a.console.Println("token:         %s", signed.Token)
	a.console.Println("authorization: %s", signed.Header)
	return signed, nil
}

// FixedClock devolve um relógio que sempre retorna t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
