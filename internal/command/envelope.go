package command

import "net/http"

// Envelope is the response shape shared by every command.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	User    any    `json:"user,omitempty"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
	Link    string `json:"link,omitempty"`
}

// result is what a handler produces before localization.
type result struct {
	status  int
	message MessageKey
	user    any
	data    any
	token   string
	link    string
}

func ok(key MessageKey) result {
	return result{status: http.StatusOK, message: key}
}

func (r result) withUser(v any) result     { r.user = v; return r }
func (r result) withData(v any) result     { r.data = v; return r }
func (r result) withToken(t string) result { r.token = t; return r }
func (r result) withLink(l string) result  { r.link = l; return r }
