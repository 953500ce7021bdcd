package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

const (
	defaultFooter = "If you didn't request this, please ignore this message."
	defaultBrand  = "Your Brand"
)

// Message a rendered multipart email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Headers map[string]string
}

type taskLayout struct {
	subject  string
	title    string
	footer   string
	codeArg  string
	toArg    string
	headers  map[string]string
	needLink bool
}

var layouts = map[string]taskLayout{
	TaskEmailVerification: {
		subject: "Verify Your Email Address", title: "Verify Your Email",
		codeArg: "code", toArg: "receiver_email",
	},
	TaskPasswordReset: {
		subject: "Reset Your Password", title: "Password Reset",
		codeArg: "code", toArg: "email",
	},
	TaskEmailChangeVerification: {
		subject: "Verify Your New Email Address", title: "Email Change",
		codeArg: "code", toArg: "new_email",
	},
	TaskActivationInvite: {
		subject: "Welcome to Your Brand", title: "Activate Your Account",
		footer: "If you weren't expecting this invitation, please ignore this message.",
		toArg:  "email", needLink: true,
	},
	TaskOTPVerification: {
		subject: "Your Sign-In Verification Code", title: "Sign-In Verification",
		footer:  "If you didn't request this code, please ignore this message.",
		codeArg: "otp_code", toArg: "email",
		headers: map[string]string{"X-Priority": "1", "X-MSMail-Priority": "High"},
	},
}

type codeBox struct {
	Label string
	Code  string
}

type noticeBox struct {
	Heading string
	Body    string
}

type contentData struct {
	FirstName  string
	Code       string
	Link       string
	TTLMinutes int
	Brand      string
}

type layoutData struct {
	Title        string
	Content      template.HTML
	Footer       string
	Brand        string
	SupportEmail string
	SiteURL      string
}

// RendererConfig values shared by every email.
type RendererConfig struct {
	FrontendURL   string
	OTPTTLSeconds int
	Brand         string
	SupportEmail  string
}

// Renderer turns tasks into messages.
type Renderer struct {
	cfg  RendererConfig
	html map[string]*template.Template
	text map[string]*texttemplate.Template
}

func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	if cfg.Brand == "" {
		cfg.Brand = defaultBrand
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	funcs := template.FuncMap{
		"codeBox": func(label, code string) codeBox { return codeBox{Label: label, Code: code} },
		"notice":  func(heading, body string) noticeBox { return noticeBox{Heading: heading, Body: body} },
	}

	r := &Renderer{
		cfg:  cfg,
		html: make(map[string]*template.Template, len(layouts)+1),
		text: make(map[string]*texttemplate.Template, len(layouts)),
	}

	base, err := template.ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}
	r.html["base"] = base

	for name := range layouts {
		h, err := template.New(name+".html").Funcs(funcs).
			ParseFS(templateFS, "templates/code_block.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s html: %w", name, err)
		}
		t, err := texttemplate.ParseFS(templateFS, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("parse %s text: %w", name, err)
		}
		r.html[name], r.text[name] = h, t
	}
	return r, nil
}

// ActivationLink frontend URL the invite points to.
func (r *Renderer) ActivationLink(uid, token string) string {
	return fmt.Sprintf("%s/activate?uid=%s&token=%s", r.cfg.FrontendURL, uid, token)
}

// Render builds the multipart message for task.
func (r *Renderer) Render(task Task) (*Message, error) {
	s, ok := layouts[task.Name]
	if !ok {
		return nil, fmt.Errorf("unknown email task %q", task.Name)
	}

	to, err := task.arg(s.toArg)
	if err != nil {
		return nil, err
	}
	data := contentData{
		FirstName:  task.Args["first_name"],
		TTLMinutes: r.cfg.OTPTTLSeconds / 60,
		Brand:      r.cfg.Brand,
	}
	if s.codeArg != "" {
		if data.Code, err = task.arg(s.codeArg); err != nil {
			return nil, err
		}
	}
	if s.needLink {
		uid, err := task.arg("uid")
		if err != nil {
			return nil, err
		}
		token, err := task.arg("token")
		if err != nil {
			return nil, err
		}
		data.Link = r.ActivationLink(uid, token)
	}

	var content bytes.Buffer
	if err = r.html[task.Name].ExecuteTemplate(&content, task.Name+".html", data); err != nil {
		return nil, fmt.Errorf("render %s html: %w", task.Name, err)
	}
	footer := s.footer
	if footer == "" {
		footer = defaultFooter
	}
	var page bytes.Buffer
	err = r.html["base"].Execute(&page, layoutData{
		Title:        s.title,
		Content:      template.HTML(content.String()),
		Footer:       footer,
		Brand:        r.cfg.Brand,
		SupportEmail: r.cfg.SupportEmail,
		SiteURL:      r.cfg.FrontendURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s layout: %w", task.Name, err)
	}

	var text bytes.Buffer
	if err = r.text[task.Name].Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render %s text: %w", task.Name, err)
	}

	return &Message{
		To:      to,
		Subject: s.subject,
		Text:    text.String(),
		HTML:    page.String(),
		Headers: s.headers,
	}, nil
}
