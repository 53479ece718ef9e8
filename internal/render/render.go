package render

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/edvin/accounts/internal/model"
)

const pageShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main class="page">
{{.Body}}</main>
</body>
</html>
`

const activationForm = `<div class="activation-form">
<form method="post" action="">
<input type="hidden" name="_activation_nonce" value="{{.Nonce}}">
<p class="activation-form__field">
<label for="activation-key">Activation key</label>
<input type="text" id="activation-key" name="activation_key" required autocomplete="off" placeholder="Paste your activation key here">
</p>
<p class="activation-form__submit">
<button type="submit">Activate account</button>
</p>
</form>
</div>
`

const resetRequestForm = `<div class="password-reset">
<form method="post" action="" class="password-reset__form">
<input type="hidden" name="_reset_request_nonce" value="{{.Nonce}}">
<p class="password-reset__field">
<label for="user-login">Username or email address</label>
<input type="text" id="user-login" name="user_login" required autocomplete="username">
</p>
<p class="password-reset__submit">
<button type="submit">Get new password</button>
</p>
</form>
</div>
`

const resetPasswordForm = `<div class="password-reset">
<form method="post" action="" class="password-reset__form">
<input type="hidden" name="_reset_nonce" value="{{.Nonce}}">
<input type="hidden" name="rp_key" value="{{.Key}}">
<input type="hidden" name="rp_login" value="{{.Login}}">
<p class="password-reset__field">
<label for="pass1">New password</label>
<input type="password" id="pass1" name="pass1" required autocomplete="new-password">
</p>
<p class="password-reset__field">
<label for="pass2">Confirm new password</label>
<input type="password" id="pass2" name="pass2" required autocomplete="new-password">
</p>
<p class="password-reset__submit">
<button type="submit">Set password</button>
</p>
</form>
</div>
`

var (
	shellTmpl         = template.Must(template.New("shell").Parse(pageShell))
	activationTmpl    = template.Must(template.New("activation-form").Parse(activationForm))
	resetRequestTmpl  = template.Must(template.New("reset-request-form").Parse(resetRequestForm))
	resetPasswordTmpl = template.Must(template.New("reset-password-form").Parse(resetPasswordForm))
)

// Renderer assembles a page from its regions: regions pass through the
// visibility filter, bound regions get their value substituted, and form
// regions expand to the matching form with the request's nonce.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) RenderPage(w io.Writer, page *model.Page, regions []model.PageRegion, rc Context) error {
	resolver := NewBindingResolver(rc.Activation, rc.Reset)

	var body strings.Builder
	for _, region := range regions {
		if !ShouldRender(region.Variation, rc) {
			continue
		}

		switch region.Variation {
		case model.VariationActivationForm:
			if err := activationTmpl.Execute(&body, struct{ Nonce string }{rc.Nonces.Activation}); err != nil {
				return fmt.Errorf("render activation form: %w", err)
			}
			continue
		case model.VariationResetForm:
			if err := r.renderResetForm(&body, rc); err != nil {
				return err
			}
			continue
		}

		if region.Binding != "" {
			value, _ := resolver.Resolve(region.Binding)
			body.WriteString(fmt.Sprintf(region.Content, html.EscapeString(value)))
			body.WriteString("\n")
			continue
		}

		body.WriteString(region.Content)
		body.WriteString("\n")
	}

	err := shellTmpl.Execute(w, struct {
		Title string
		Body  template.HTML
	}{page.Title, template.HTML(body.String())})
	if err != nil {
		return fmt.Errorf("render page %s: %w", page.ID, err)
	}
	return nil
}

// renderResetForm picks the sub-form: a key and login in the URL mean the
// user followed an emailed link and gets the set-password form, otherwise
// they get the request-a-link form.
func (r *Renderer) renderResetForm(w io.Writer, rc Context) error {
	if rc.ResetKey != "" && rc.ResetLogin != "" {
		err := resetPasswordTmpl.Execute(w, struct{ Nonce, Key, Login string }{rc.Nonces.Reset, rc.ResetKey, rc.ResetLogin})
		if err != nil {
			return fmt.Errorf("render reset form: %w", err)
		}
		return nil
	}
	err := resetRequestTmpl.Execute(w, struct{ Nonce string }{rc.Nonces.ResetRequest})
	if err != nil {
		return fmt.Errorf("render reset request form: %w", err)
	}
	return nil
}
