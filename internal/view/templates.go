package view

import (
	"html/template"
	"strings"
)

var fragments = template.Must(template.New("fragments").Parse(`
{{define "menu-item"}}<li id="{{.ID}}" data-item{{if .Active}} class="active"{{end}}><a href="#" data-input="select" data-id="{{.PlaylistID}}">{{.Label}}</a></li>{{end}}

{{define "track"}}<div class="track{{if .Playing}} playing{{end}}" id="{{.ID}}" data-item><a class="close" href="#" data-input="remove-track" data-id="{{.ID}}">&times;</a>{{template "player" .}}</div>{{end}}

{{define "player"}}<div class="player" id="{{.ID}}-player" data-id="{{.ID}}">{{if .PlayerURL}}<iframe width="100%" height="166" scrolling="no" frameborder="no" allow="autoplay" src="{{.PlayerURL}}"></iframe>{{else}}{{.Failure}}{{end}}</div>{{end}}

{{define "editable"}}<div id="{{.ID}}" class="editable{{if .Empty}} empty{{end}}" data-input="edit" data-field="{{.Field}}">{{if .Editing}}<input type="text" value="{{.Value}}" data-field="{{.Field}}">{{else}}{{.Text}}{{end}}</div>{{end}}

{{define "panel"}}<div id="playlist" class="playlist">
<h1 class="playlist-title">{{.Title}}</h1>
<div class="lead playlist-description">{{.Description}}</div>
<div id="empty-list" class="alert empty-list"{{if not .Empty}} style="display:none"{{end}}>This playlist is empty. Add a track with the button above or the bookmarklet.</div>
<div id="tracks" class="tracks">{{.Tracks}}</div>
</div>{{end}}
`))

func render(name string, data any) template.HTML {
	var sb strings.Builder
	if err := fragments.ExecuteTemplate(&sb, name, data); err != nil {
		// The templates are fixed and the data types are ours.
		panic("view: render " + name + ": " + err.Error())
	}
	return template.HTML(sb.String()) // #nosec G203 -- produced by html/template
}
