package controllers

import "time"

const (
	DefaultRequestTimeout = 3 * time.Second
)

// homePage главная страница с формой сокращения. Форма ходит в POST
// /api/shorten, вся остальная презентация живет на стороне клиента.
const homePage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Shortlink</title>
</head>
<body>
    <h1>Shortlink</h1>
    <form id="shortenForm">
        <input type="url" name="url" placeholder="https://..." required>
        <button type="submit">Shorten</button>
    </form>
    <p id="result"></p>
    <script>
        const form = document.getElementById('shortenForm');
        const result = document.getElementById('result');
        form.addEventListener('submit', async function (e) {
            e.preventDefault();
            const url = new FormData(form).get('url');
            try {
                const res = await fetch('/api/shorten', {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: JSON.stringify({url})
                });
                const data = await res.json();
                result.textContent = data.error ? data.error : data.short_url;
            } catch (err) {
                result.textContent = 'Request failed';
            }
        });
    </script>
</body>
</html>
`
