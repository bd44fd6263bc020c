package routes

import (
	"bytes"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
)

const siteIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      color-scheme: light;
      --bg: #f7f6f3;
      --panel: #ffffff;
      --text: #18201c;
      --muted: #5b6660;
      --accent: #c2410c;
      --border: #ddd8d0;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: Georgia, "Times New Roman", serif;
      color: var(--text);
      background: linear-gradient(180deg, #fffdf9 0%, var(--bg) 100%);
    }
    main { max-width: 1040px; margin: 0 auto; padding: 48px 20px 64px; }
    section {
      background: var(--panel);
      border: 1px solid var(--border);
      border-radius: 16px;
      padding: 32px;
      margin-bottom: 24px;
      box-shadow: 0 16px 48px rgba(24, 32, 28, 0.06);
    }
    h1 { font-size: 2.4rem; margin: 0 0 8px; }
    h2 { font-size: 1.5rem; margin: 0 0 16px; }
    p.lede { color: var(--muted); font-size: 1.1rem; margin: 0 0 20px; }
    .cta {
      display: inline-block;
      background: var(--accent);
      color: #fff;
      padding: 12px 24px;
      border-radius: 8px;
      text-decoration: none;
      font-weight: 600;
    }
    .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 16px; }
    .card { border: 1px solid var(--border); border-radius: 12px; padding: 20px; }
    .card h3 { margin: 0 0 8px; font-size: 1.1rem; }
    .card p { margin: 0; color: var(--muted); font-size: 0.95rem; }
    blockquote { margin: 0; padding: 16px 20px; border-left: 3px solid var(--accent); color: var(--muted); }
    blockquote footer { margin-top: 8px; font-style: italic; }
    form label { display: block; margin-bottom: 12px; font-size: 0.95rem; }
    form input, form textarea {
      display: block; width: 100%; margin-top: 4px; padding: 10px;
      border: 1px solid var(--border); border-radius: 8px; font: inherit;
    }
    form button {
      background: var(--accent); color: #fff; border: 0; border-radius: 8px;
      padding: 12px 28px; font: inherit; font-weight: 600; cursor: pointer;
    }
    footer.page { text-align: center; color: var(--muted); font-size: 0.9rem; }
  </style>
</head>
<body>
  <main>
    <section id="hero">
      <h1>{{ .Title }}</h1>
      <p class="lede">Personal coaching that meets you where you are. Train with intent, eat with a plan, and watch the numbers move.</p>
      <a class="cta" href="#contact">Start your journey</a>
    </section>

    <section id="about">
      <h2>About your coach</h2>
      <p>A decade of hands-on coaching across strength, conditioning, and nutrition. No cookie-cutter templates: every program is built around your schedule, your equipment, and your goals, then adjusted week by week as your log fills up.</p>
    </section>

    <section id="services">
      <h2>Sessions on offer</h2>
      <div class="grid">
        {{ range .Services }}
        <div class="card">
          <h3>{{ .Name }}</h3>
          <p>{{ .Description }}</p>
        </div>
        {{ end }}
      </div>
    </section>

    <section id="testimonials">
      <h2>What clients say</h2>
      <div class="grid">
        {{ range .Testimonials }}
        <blockquote>
          {{ .Quote }}
          <footer>{{ .Author }}</footer>
        </blockquote>
        {{ end }}
      </div>
    </section>

    <section id="contact">
      <h2>Get in touch</h2>
      <form method="post" action="/api/contact">
        <label>Name <input name="name" required></label>
        <label>Email <input name="email" type="email" required></label>
        <label>Phone <input name="phone"></label>
        <label>Message <textarea name="message" rows="4" required></textarea></label>
        <button type="submit">Send message</button>
      </form>
    </section>

    <footer class="page">&copy; {{ .Year }} Elite Fitness Coaching</footer>
  </main>
</body>
</html>`

type siteService struct {
	Name        string
	Description string
}

type siteTestimonial struct {
	Quote  string
	Author string
}

type sitePageData struct {
	Title        string
	Services     []siteService
	Testimonials []siteTestimonial
	Year         int
}

var siteTemplate = template.Must(template.New("site-index").Parse(siteIndexHTML))

// RegisterSite serves the public marketing page at the root. Everything else
// lives under /api.
func RegisterSite(app fiber.Router) {
	data := sitePageData{
		Title: "Elite Fitness Coaching",
		Services: []siteService{
			{Name: "1-on-1 Training", Description: "A full hour on the floor together, programmed around your current block."},
			{Name: "Nutrition Consultation", Description: "Audit what you actually eat and build a plan you can keep."},
			{Name: "Progress Review", Description: "Walk through your numbers, photos, and lifts, then adjust the plan."},
			{Name: "Goal Setting", Description: "Turn a vague ambition into a dated, measurable target."},
		},
		Testimonials: []siteTestimonial{
			{Quote: "Down 14 kilos in six months and my deadlift went up. The weekly check-ins kept me honest.", Author: "Priya, client since 2024"},
			{Quote: "First coach who asked about my shift schedule before writing a program.", Author: "Marcus, client since 2023"},
			{Quote: "The booking system alone is worth it. Pick a slot, show up, train.", Author: "Elena, client since 2025"},
		},
	}

	handler := func(c *fiber.Ctx) error {
		// Copy per request; fiber runs handlers concurrently.
		page := data
		page.Year = time.Now().Year()

		var body bytes.Buffer
		if err := siteTemplate.Execute(&body, page); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/", handler)
	app.Get("/index.html", handler)
}
