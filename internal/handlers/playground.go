package handlers

import (
	"html/template"
	"net/http"
)

// Playground serves the GraphiQL HTML page
func Playground(w http.ResponseWriter, r *http.Request) {
	tmpl := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Weather Advisor GraphQL</title>
    <link rel="stylesheet" href="https://unpkg.com/graphiql@3.0.6/graphiql.min.css">
    <style>
        html, body { height: 100%; margin: 0; }
        #graphiql { height: 100vh; }
    </style>
</head>
<body>
    <div id="graphiql"></div>
    <script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
    <script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
    <script src="https://unpkg.com/graphiql@3.0.6/graphiql.min.js"></script>
    <script>
        const root = ReactDOM.createRoot(document.getElementById('graphiql'));
        root.render(
            React.createElement(GraphiQL, {
                fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
                defaultEditorToolsVisibility: true,
            })
        );
    </script>
</body>
</html>`

	t := template.Must(template.New("playground").Parse(tmpl))
	w.Header().Set("Content-Type", "text/html")
	t.Execute(w, nil)
}
