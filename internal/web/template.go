package web

const pageHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    :root {
      --bg: #f4f8ef;
      --card: #ffffff;
      --text: #1f2a1a;
      --muted: #6b7a63;
      --line: #e3eadc;
      --epic: #9b30ff;
      --rare: #1e88e5;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      background: var(--bg);
      font-family: "Segoe UI", "PingFang SC", "Microsoft Yahei", sans-serif;
      color: var(--text);
    }
    .container {
      width: 1200px;
      padding: 32px 40px 36px 40px;
    }
    .title {
      font-size: 30px;
      font-weight: 600;
      margin-bottom: 14px;
    }
    .meta {
      display: flex;
      gap: 24px;
      font-size: 16px;
      color: var(--muted);
      margin-bottom: 18px;
      flex-wrap: wrap;
    }
    .weather {
      display: flex;
      align-items: center;
      gap: 16px;
      background: var(--card);
      border-radius: 10px;
      padding: 14px 18px;
      margin-bottom: 18px;
      font-size: 18px;
    }
    .weather .icon { font-size: 32px; }
    .panels {
      display: grid;
      grid-template-columns: repeat(3, 1fr);
      gap: 18px;
    }
    .panel {
      background: var(--card);
      border-radius: 10px;
      padding: 14px 18px;
    }
    .panel h2 {
      font-size: 20px;
      font-weight: 500;
      margin: 0 0 10px 0;
      color: var(--muted);
    }
    .panel ul {
      list-style: none;
      margin: 0;
      padding: 0;
      font-size: 18px;
    }
    .panel li {
      padding: 8px 0;
      border-bottom: 1px solid var(--line);
    }
    .highlight-epic { color: var(--epic); font-weight: 600; }
    .highlight-rare { color: var(--rare); font-weight: 600; }
    .footer {
      margin-top: 12px;
      font-size: 14px;
      color: var(--muted);
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="title">{{.Title}}</div>
    <div class="meta">
      <span id="localTime">{{.LocalTime}}</span>
      <span>🎄 <span id="countdown">{{.Countdown}}</span></span>
    </div>
    <div class="weather">
      <span class="icon" id="weatherIcon">{{.WeatherIcon}}</span>
      <span id="weatherDesc">{{.WeatherDesc}}</span>
      <span id="weatherBonus">{{.WeatherBonus}}</span>
    </div>
    <div class="panels">
      <div class="panel">
        <h2>Gear</h2>
        <ul id="gearList">{{range .Gear}}<li{{if .Class}} class="{{.Class}}"{{end}}>{{.Text}}</li>{{end}}</ul>
      </div>
      <div class="panel">
        <h2>Seeds</h2>
        <ul id="seedsList">{{range .Seeds}}<li{{if .Class}} class="{{.Class}}"{{end}}>{{.Text}}</li>{{end}}</ul>
      </div>
      <div class="panel">
        <h2>Eggs</h2>
        <ul id="eggsList">{{range .Eggs}}<li{{if .Class}} class="{{.Class}}"{{end}}>{{.Text}}</li>{{end}}</ul>
      </div>
    </div>
    <div class="footer" id="lastUpdated">{{.LastUpdated}}</div>
  </div>
  {{if .Live}}
  <script>
    (function () {
      function setList(region, entries) {
        var el = document.getElementById(region);
        if (!el) return;
        el.textContent = "";
        (entries || []).forEach(function (e) {
          var li = document.createElement("li");
          li.textContent = e.text;
          if (e.class) li.className = e.class;
          el.appendChild(li);
        });
      }
      function setText(region, text) {
        var el = document.getElementById(region);
        if (el) el.textContent = text;
      }
      function apply(msg) {
        if (msg.type === "state") {
          var lists = msg.state.lists || {};
          var texts = msg.state.texts || {};
          Object.keys(lists).forEach(function (r) { setList(r, lists[r]); });
          Object.keys(texts).forEach(function (r) { setText(r, texts[r]); });
        } else if (msg.type === "list") {
          setList(msg.region, msg.entries);
        } else if (msg.type === "text") {
          setText(msg.region, msg.text);
        }
      }
      function connect() {
        var proto = location.protocol === "https:" ? "wss://" : "ws://";
        var ws = new WebSocket(proto + location.host + "/ws");
        ws.onmessage = function (ev) { apply(JSON.parse(ev.data)); };
        ws.onclose = function () { setTimeout(connect, 3000); };
      }
      connect();
    })();
  </script>
  {{end}}
</body>
</html>`
