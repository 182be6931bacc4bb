// Package testsupport holds fixtures and fakes shared by package tests.
package testsupport

import (
	"testing"

	"github.com/goliatone/go-sitekit/pkg/dom"
)

// SamplePage mirrors the structure of the site pages: header with title,
// navigation, cards with icons, two content sections, a contact form and a
// footer paragraph.
const SamplePage = `<!DOCTYPE html>
<html lang="uk">
<head><title>Really Good Advices</title></head>
<body>
<header><h1>Really Good Advices</h1></header>
<nav><a href="index.html">Головна</a><a href="advice.html">Поради</a></nav>
<main>
<section>
<h2>Поради</h2>
<div class="home-card"><span class="home-card-icon">*</span><h3>Дім</h3></div>
<div class="advice-card" style="transform: rotate(1deg);"><span class="card-icon">!</span><h4>Порада</h4></div>
<div class="cooking-card"><h3>Кухня</h3></div>
</section>
<section>
<h2>Контакти</h2>
<form id="contact-form">
<label for="name">Ім'я</label>
<input type="text" id="name" name="name"><br>
<label for="email">Email</label>
<input type="email" id="email" name="email"><br>
<label for="message">Повідомлення</label>
<textarea id="message" name="message"></textarea><br>
<label for="contact-type">Спосіб зв'язку</label>
<select id="contact-type" name="contactType"><option value="">--</option><option value="phone">Телефон</option><option value="email">Email</option></select>
<label for="contact-info">Контакт</label>
<input type="text" id="contact-info" name="contactInfo">
<button type="submit">Надіслати</button>
</form>
</section>
</main>
<footer><p>&copy; 2025 Really Good Advices</p></footer>
</body>
</html>`

// MinimalPage has no optional regions at all.
const MinimalPage = `<!DOCTYPE html><html><head></head><body><p>plain</p></body></html>`

// MustParse parses markup or fails the test.
func MustParse(t testing.TB, markup string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}
