package callback

import (
	"fmt"
	"html/template"
	"io"
)

// codePreviewLength is how much of the code we echo back in the /complete hint
const codePreviewLength = 20

const pageLayout = `<!DOCTYPE html>
<html>
<head>
<title>Anasi - {{template "title" .}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
body.error { background: #ff6b6b; }
.container { background: white; padding: 2rem; border-radius: 15px; box-shadow: 0 10px 30px rgba(0,0,0,0.3); text-align: center; max-width: 500px; margin: 20px; }
.icon { font-size: 4rem; margin-bottom: 1rem; }
.code-box { background: #f8f9fa; border: 3px solid #28a745; border-radius: 8px; padding: 20px; margin: 20px 0; font-family: monospace; word-break: break-all; font-size: 16px; font-weight: bold; cursor: pointer; }
.instructions { background: #e3f2fd; padding: 15px; border-radius: 8px; margin-top: 1rem; border-left: 4px solid #2196f3; text-align: left; }
.error-message { background: #f8d7da; padding: 15px; border-radius: 8px; color: #721c24; }
button { color: white; border: none; padding: 10px 20px; border-radius: 8px; cursor: pointer; font-size: 1rem; margin-top: 1rem; }
.copy-btn { background: #28a745; }
.close-btn { background: #6f42c1; }
</style>
</head>
<body{{if eq .Name "error"}} class="error"{{end}}>
<div class="container">
{{template "content" .}}
</div>
</body>
</html>
`

const automaticSuccessContent = `
{{define "title"}}Successfully Connected!{{end}}
{{define "content"}}
<div class="icon">✅</div>
<h1>Successfully Connected!</h1>
<p>Your Twitch account has been linked to Anasi. The bot has received your authorization automatically.</p>
<div class="instructions">
<strong>🎯 Next Steps:</strong><br>
1. <strong>Go back to Discord</strong>; Anasi will confirm the link shortly<br>
2. <strong>Start monitoring:</strong> <code>/monitor &lt;streamer&gt;</code>
</div>
<p><small>Discord user: {{.DiscordUserId}}</small></p>
<p><small>Authorization code: <code>{{.Code}}</code></small></p>
<button class="close-btn" onclick="window.close()">Close Tab</button>
{{end}}
`

const manualFallbackContent = `
{{define "title"}}Successfully Connected!{{end}}
{{define "content"}}
<div class="icon">✅</div>
<h1>Successfully Connected!</h1>
<p>Your Twitch account has been linked to Anasi</p>
<div class="code-box" id="code" title="Click to select authorization code" onclick="selectCode()">{{.Code}}</div>
<button class="copy-btn" onclick="copyCode()">📋 Copy Code</button>
<div class="instructions">
<strong>🎯 Next Steps:</strong><br>
1. <strong>Copy the code above</strong> (click it or use the copy button)<br>
2. <strong>Go back to Discord</strong><br>
3. <strong>Use command:</strong> <code>/complete {{.CodePreview}}...</code><br>
4. <strong>Start monitoring:</strong> <code>/monitor &lt;streamer&gt;</code>
</div>
<button class="close-btn" onclick="window.close()">Close Tab</button>
<script>
function selectCode() {
  var range = document.createRange();
  range.selectNodeContents(document.getElementById('code'));
  window.getSelection().removeAllRanges();
  window.getSelection().addRange(range);
}
function copyCode() {
  var code = document.getElementById('code').textContent;
  navigator.clipboard.writeText(code).then(function() {
    var btn = document.querySelector('.copy-btn');
    btn.textContent = '✅ Copied!';
    setTimeout(function() { btn.textContent = '📋 Copy Code'; }, 2000);
  });
}
</script>
{{end}}
`

const errorContent = `
{{define "title"}}Connection Error{{end}}
{{define "content"}}
<div class="icon">❌</div>
<h1>Connection Failed</h1>
<div class="error-message">{{.Message}}</div>
<p>Go back to Discord and try <code>/connect</code> again</p>
{{end}}
`

var pages = map[ViewName]*template.Template{
	ViewAutomaticSuccess: mustParsePage(ViewAutomaticSuccess, automaticSuccessContent),
	ViewManualFallback:   mustParsePage(ViewManualFallback, manualFallbackContent),
	ViewError:            mustParsePage(ViewError, errorContent),
}

func mustParsePage(name ViewName, content string) *template.Template {
	return template.Must(template.Must(template.New(string(name)).Parse(pageLayout)).Parse(content))
}

// pageData is the input to each page template
type pageData struct {
	View
	CodePreview string
}

// renderView writes the HTML page for the given view
func renderView(w io.Writer, view View) error {
	page, ok := pages[view.Name]
	if !ok {
		return fmt.Errorf("no page defined for view '%s'", view.Name)
	}
	preview := view.Code
	if len(preview) > codePreviewLength {
		preview = preview[:codePreviewLength]
	}
	return page.Execute(w, pageData{View: view, CodePreview: preview})
}
