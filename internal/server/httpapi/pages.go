package httpapi

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/labstack/echo/v4"
)

//go:embed web/*.html web/static/*
var webFS embed.FS

var pageTemplates = template.Must(template.ParseFS(webFS, "web/*.html"))

type page struct {
	Path  string
	Title string
}

// salonPages share the shell; the browser script fills each one from the API.
var salonPages = []page{
	{"/dashboard", "Dashboard"},
	{"/appointments", "Appointments"},
	{"/customers", "Customers"},
	{"/staff", "Staff"},
	{"/billing", "Billing"},
	{"/inventory", "Inventory"},
	{"/attendance", "Attendance"},
	{"/settings", "Settings"},
}

type pageData struct {
	Title   string
	Path    string
	Nav     []page
	Session *auth.Session
}

func (s *Server) pageRoutes() {
	e := s.echo

	static, _ := fs.Sub(webFS, "web/static")
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	e.GET("/", s.home)
	e.GET("/login", s.loginPage)
	e.GET("/admin", s.adminPage, s.pageSession)
	for _, p := range salonPages {
		e.GET(p.Path, s.salonPage(p), s.pageSession)
	}
}

// pageSession is requireSession for browsers: no session means the login form.
func (s *Server) pageSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := s.readSession(c)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

func landing(sess *auth.Session) string {
	if sess.IsAdmin() {
		return "/admin"
	}
	return "/dashboard"
}

func (s *Server) home(c echo.Context) error {
	sess, err := s.readSession(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Redirect(http.StatusSeeOther, landing(sess))
}

func (s *Server) loginPage(c echo.Context) error {
	if sess, err := s.readSession(c); err == nil {
		return c.Redirect(http.StatusSeeOther, landing(sess))
	}
	return s.render(c, "login.html", pageData{Title: "Sign in", Path: "/login"})
}

func (s *Server) adminPage(c echo.Context) error {
	sess := sessionOf(c)
	if !sess.IsAdmin() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return s.render(c, "shell.html", pageData{Title: "Salons", Path: "/admin", Session: sess})
}

func (s *Server) salonPage(p page) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := sessionOf(c)
		if sess.IsAdmin() {
			return c.Redirect(http.StatusSeeOther, "/admin")
		}
		return s.render(c, "shell.html", pageData{Title: p.Title, Path: p.Path, Nav: salonPages, Session: sess})
	}
}

func (s *Server) render(c echo.Context, name string, data pageData) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().Header().Set("Cache-Control", "no-store")
	c.Response().WriteHeader(http.StatusOK)
	return s.pages.ExecuteTemplate(c.Response(), name, data)
}
