package site

// layoutTemplates holds the shared page chrome and every section partial.
const layoutTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <meta name="description" content="{{.Site.Tagline}}">
  {{if .Site.Favicon}}<link rel="icon" href="{{.Site.Favicon}}">{{end}}
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body{{if .Live}} data-live="{{.LivePath}}"{{end}} data-frame-rate="{{.FrameRate}}" data-travel="{{.Travel}}">
{{if .Site.HoverBell}}<audio id="hover-bell" preload="auto" src="{{.Site.HoverBell}}"></audio>{{end}}
{{end}}

{{define "foot"}}
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>{{end}}

{{define "splash"}}{{if and .Site.Splash.Enabled .Site.Splash.Src}}
<div class="splash" id="splash">
  <video class="splash-video" src="{{.Site.Splash.Src}}" autoplay muted playsinline></video>
  <button class="splash-skip" type="button" data-bell>Enter</button>
</div>{{end}}{{end}}

{{define "header"}}
<header class="site-header">
  <div class="wrap header-inner">
    <a class="brand" href="{{.BasePath}}index.html" data-bell>{{.Site.Title}}</a>
    <nav class="nav">
      <a href="{{.BasePath}}index.html#releases" data-bell>Shows</a>
      <a href="{{.BasePath}}index.html#about" data-bell>About</a>
      {{if .About.Links.Email}}<a href="{{.About.Links.Email}}" data-bell>Contact</a>{{end}}
    </nav>
  </div>
</header>{{end}}

{{define "hero"}}
<section class="hero"{{if .Site.HeroBackground}} style="{{heroStyle .Site.HeroBackground}}"{{end}}>
  <div class="hero-shade"></div>
  <div class="wrap hero-inner">
    <h1>{{.Site.Title}}</h1>
    {{if .Site.Tagline}}<p class="tagline">{{.Site.Tagline}}</p>{{end}}
    {{with .Newest}}
    <a class="cta" href="{{.Href}}" data-bell>
      <span class="cta-label">Newest show</span>
      <span class="cta-title">{{.Title}}</span>
    </a>{{end}}
  </div>
</section>{{end}}

{{define "releases"}}
<section class="releases" id="releases">
  <div class="wrap">
    <h2>Shows</h2>
    {{if .Shows}}
    <ul class="release-grid">
      {{range .Shows}}
      <li class="release-card">
        <a href="{{.Href}}" data-bell>
          {{if .Cover}}<img src="{{.Cover}}" alt="{{.Title}}" loading="lazy" data-fallback>{{else}}<div class="cover-missing"></div>{{end}}
          <span class="release-title">{{.Title}}</span>
          {{if .Year}}<span class="release-year">{{.Year}}</span>{{end}}
        </a>
      </li>
      {{end}}
    </ul>
    {{else}}
    <p class="empty">New work is on the way.</p>
    {{end}}
  </div>
</section>{{end}}

{{define "parallax"}}{{if .Quote}}
<section class="parallax">
  <div class="wrap">
    <div class="parallax-track" data-scroll-subject="quote" data-lines="{{len .Quote}}">
      <div class="parallax-pin">
        {{range .Quote}}<p class="scroll-line" data-line="{{.Index}}" data-total="{{.Total}}" style="{{.Style}}">{{.Text}}</p>
        {{end}}
      </div>
    </div>
  </div>
</section>{{end}}{{end}}

{{define "petalmap"}}{{if .Petals}}
<div class="petal-track" data-scroll-subject="petals-{{.Slug}}" data-petals="{{len .Petals}}">
  <div class="petal-pin">
    <div class="petal-map">
      {{if .Cover}}<img class="petal-bg" src="{{.Cover}}" alt="" data-fallback>{{end}}
      {{range .Petals}}
        {{if .Linked}}<a class="petal" href="{{.Href}}" target="_blank" rel="noreferrer" title="{{.Label}}"
           data-petal="{{.Index}}" data-threshold="{{.Threshold}}" style="{{.Style}}" data-bell><span class="sr">{{.Label}}</span></a>
        {{else}}<span class="petal petal-dead" aria-disabled="true"
           data-petal="{{.Index}}" data-threshold="{{.Threshold}}" style="{{.Style}}"></span>{{end}}
      {{end}}
    </div>
  </div>
</div>{{end}}{{end}}

{{define "about"}}
<section class="about" id="about">
  <div class="wrap about-grid">
    {{if .About.Photo}}<img class="about-photo" src="{{.About.Photo}}" alt="{{.About.Name}}" data-fallback>{{end}}
    <div>
      <h2>About Me</h2>
      <div class="bio">{{.About.BioHTML}}</div>
      {{if .About.Bullets}}
      <ul class="bullets">{{range .About.Bullets}}<li>{{.}}</li>{{end}}</ul>
      {{end}}
      <div class="pills">
        {{if .About.Links.YouTube}}<a href="{{.About.Links.YouTube}}" data-bell>YouTube</a>{{end}}
        {{if .About.Links.SoundCloud}}<a href="{{.About.Links.SoundCloud}}" data-bell>SoundCloud</a>{{end}}
        {{if .About.Links.Email}}<a href="{{.About.Links.Email}}" data-bell>Hire Me</a>{{end}}
      </div>
    </div>
  </div>
</section>{{end}}

{{define "soundtrack"}}{{if .Soundtracks}}
<aside class="soundtrack">
  {{range .Soundtracks}}
    {{if .Playable}}
    <div class="soundtrack-gate">
      <audio class="soundtrack-audio" src="{{.URL}}" preload="none" loop></audio>
      <button class="soundtrack-toggle" type="button" aria-pressed="false" data-bell>
        <span class="when-paused">Play</span><span class="when-playing">Pause</span> {{.Label}}
      </button>
    </div>
    {{else}}
    <a class="soundtrack-link" href="{{.URL}}" target="_blank" rel="noreferrer" data-bell>Listen: {{.Label}}</a>
    {{end}}
  {{end}}
</aside>{{end}}{{end}}

{{define "footer"}}
<footer class="site-footer">
  <div class="wrap footer-inner">
    <p>{{.Site.Copyright}}</p>
    <div class="footer-links">
      {{if .About.Links.YouTube}}<a href="{{.About.Links.YouTube}}" target="_blank" rel="noreferrer">YouTube</a>{{end}}
      {{if .About.Links.SoundCloud}}<a href="{{.About.Links.SoundCloud}}" target="_blank" rel="noreferrer">SoundCloud</a>{{end}}
      {{if .About.Links.Email}}<a href="{{.About.Links.Email}}">Contact</a>{{end}}
    </div>
  </div>
</footer>{{end}}
`

// indexTemplate is the landing page.
const indexTemplate = `{{template "head" .}}
{{template "splash" .}}
{{template "header" .}}
<main>
{{template "hero" .}}
{{template "releases" .}}
{{template "parallax" .}}
{{with .Newest}}{{if .Petals}}
<section class="petals">
  <div class="wrap">
    <h2>Inside {{.Title}}</h2>
    {{template "petalmap" .}}
  </div>
</section>{{end}}{{end}}
{{template "about" .}}
</main>
{{template "soundtrack" .}}
{{template "footer" .}}
{{template "foot" .}}`

// showTemplate is the detail page for one show.
const showTemplate = `{{template "head" .}}
{{template "header" .}}
<main class="show-page">
{{with .Show}}
  <section class="wrap show-intro">
    <p class="show-year">{{.Year}}</p>
    <h1>{{.Title}}</h1>
    {{if .EmbedURL}}
    <div class="video">
      <iframe src="{{.EmbedURL}}" title="{{.Title}}" loading="lazy" allow="encrypted-media; picture-in-picture" allowfullscreen></iframe>
    </div>{{end}}
    <div class="show-links">
      {{if .WatchURL}}<a href="{{.WatchURL}}" target="_blank" rel="noreferrer" data-bell>Watch on YouTube</a>{{end}}
      {{if .SoundCloudURL}}<a href="{{.SoundCloudURL}}" target="_blank" rel="noreferrer" data-bell>Listen on SoundCloud</a>{{end}}
    </div>
    <div class="description">{{.DescriptionHTML}}</div>
  </section>
  {{if .Petals}}
  <section class="wrap show-petals">
    <h2>Score excerpts</h2>
    {{template "petalmap" .}}
  </section>{{end}}
  {{if .SheetMusicLinks}}
  <section class="wrap sheets">
    <ul>{{range .SheetMusicLinks}}<li><a href="{{.URL}}" target="_blank" rel="noreferrer" data-bell>{{.Label}}</a></li>{{end}}</ul>
  </section>{{end}}
{{end}}
</main>
{{template "soundtrack" .}}
{{template "footer" .}}
{{template "foot" .}}`

// cssContent is the stylesheet for every page.
const cssContent = `:root {
  --ink: #111;
  --ink-soft: rgba(17,17,17,0.7);
  --paper: #fff;
  --rose: #f4e9ec;
  --wrap: 72rem;
}
* { box-sizing: border-box; }
html { scroll-behavior: smooth; }
body { margin: 0; font-family: ui-sans-serif, system-ui, -apple-system, "Segoe UI", sans-serif; color: var(--ink); background: var(--paper); }
a { color: inherit; }
img[data-broken] { display: none; }
.wrap { max-width: var(--wrap); margin: 0 auto; padding: 0 1rem; }
.sr { position: absolute; width: 1px; height: 1px; overflow: hidden; clip: rect(0 0 0 0); }

.splash { position: fixed; inset: 0; z-index: 50; background: #000; display: flex; align-items: center; justify-content: center; transition: opacity .6s; }
.splash.done { opacity: 0; pointer-events: none; }
.splash-video { width: 100%; height: 100%; object-fit: cover; }
.splash-skip { position: absolute; bottom: 2rem; right: 2rem; border: 1px solid rgba(255,255,255,.5); background: transparent; color: #fff; padding: .5rem 1.25rem; border-radius: 999px; cursor: pointer; }

.site-header { position: sticky; top: 0; z-index: 20; backdrop-filter: blur(8px); background: rgba(255,255,255,.8); border-bottom: 1px solid rgba(0,0,0,.05); }
.header-inner { display: flex; align-items: center; justify-content: space-between; height: 72px; }
.brand { font-weight: 600; letter-spacing: .02em; text-decoration: none; }
.nav a { margin-left: 1.25rem; text-decoration: none; color: var(--ink-soft); }
.nav a:hover { color: var(--ink); }

.hero { position: relative; min-height: 80vh; display: flex; align-items: flex-end; background-size: cover; background-position: center; background-color: var(--rose); }
.hero-shade { position: absolute; inset: 0; background: linear-gradient(to top, rgba(255,255,255,.9), rgba(255,255,255,.1)); }
.hero-inner { position: relative; padding-bottom: 4rem; }
.hero h1 { font-size: clamp(2.5rem, 6vw, 4.5rem); font-weight: 500; margin: 0; }
.tagline { font-size: 1.25rem; color: var(--ink-soft); }
.cta { display: inline-flex; flex-direction: column; margin-top: 1.5rem; padding: .75rem 1.25rem; border-radius: 1rem; background: var(--ink); color: #fff; text-decoration: none; }
.cta-label { font-size: .75rem; text-transform: uppercase; opacity: .7; }

.releases { padding: 4rem 0; }
.release-grid { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(16rem, 1fr)); gap: 1.5rem; }
.release-card a { display: block; text-decoration: none; }
.release-card img, .cover-missing { width: 100%; aspect-ratio: 16/9; object-fit: cover; border-radius: 1rem; background: var(--rose); }
.release-title { display: block; margin-top: .5rem; font-weight: 500; }
.release-year { color: var(--ink-soft); font-size: .875rem; }

.parallax-track { position: relative; height: 200vh; }
.parallax-pin { position: sticky; top: 72px; padding: 6rem 0; }
.scroll-line { font-size: clamp(1.5rem, 4vw, 3rem); margin: 0 0 1rem; will-change: opacity, transform; }
.scroll-line + .scroll-line { font-size: 1.25rem; color: var(--ink-soft); }

.petals, .show-petals { padding: 4rem 0; }
/* The map pins while its track scrolls past, so petals appear one by one. */
.petal-track { position: relative; height: 250vh; }
.petal-pin { position: sticky; top: 96px; }
.petal-map { position: relative; aspect-ratio: 16/9; border-radius: 1.5rem; overflow: hidden; background: var(--rose); }
.petal-bg { position: absolute; inset: 0; width: 100%; height: 100%; object-fit: cover; }
.petal { position: absolute; width: 2.5rem; height: 2.5rem; margin: -1.25rem 0 0 -1.25rem; border-radius: 60% 0 60% 0; background: rgba(255,255,255,.9); box-shadow: 0 4px 16px rgba(0,0,0,.2); transition: opacity .5s, transform .5s; }
.petal:hover { background: #fff; }
.petal-dead { cursor: default; }

.about { padding: 4rem 0 6rem; }
.about-grid { display: grid; gap: 2rem; align-items: center; }
@media (min-width: 768px) { .about-grid { grid-template-columns: 1.1fr 1.4fr; } }
.about-photo { width: 100%; border-radius: 1rem; object-fit: cover; }
.bio { color: var(--ink-soft); }
.bullets { display: grid; grid-template-columns: repeat(auto-fill, minmax(12rem, 1fr)); gap: .5rem; padding-left: 1rem; color: var(--ink-soft); }
.pills a { display: inline-block; margin-right: .5rem; padding: .25rem .75rem; border-radius: 999px; border: 1px solid rgba(0,0,0,.1); text-decoration: none; }

.soundtrack { position: fixed; right: 1rem; bottom: 1rem; z-index: 30; }
.soundtrack-toggle, .soundtrack-link { display: inline-block; padding: .5rem 1rem; border-radius: 999px; border: 0; background: var(--ink); color: #fff; text-decoration: none; cursor: pointer; }
.soundtrack-toggle .when-playing { display: none; }
.soundtrack-toggle[aria-pressed="true"] .when-playing { display: inline; }
.soundtrack-toggle[aria-pressed="true"] .when-paused { display: none; }

.show-intro { padding: 3rem 1rem; }
.show-year { color: var(--ink-soft); margin: 0; }
.video { position: relative; aspect-ratio: 16/9; margin: 1.5rem 0; }
.video iframe { position: absolute; inset: 0; width: 100%; height: 100%; border: 0; border-radius: 1rem; }
.show-links a { margin-right: 1rem; }
.sheets { padding-bottom: 4rem; }

.site-footer { background: #000; color: rgba(255,255,255,.7); font-size: .875rem; }
.footer-inner { display: flex; flex-wrap: wrap; gap: 1rem; justify-content: space-between; align-items: center; padding: 2.5rem 1rem; }
.footer-links a { margin-left: 1rem; text-decoration: none; }
.footer-links a:hover { color: #fff; }
`

// jsContent drives the scroll effects, the splash, the hover bell and the
// soundtrack toggle. Progress math matches internal/scroll; with data-live the
// page defers to the preview server's driver sessions.
const jsContent = `(function() {
  'use strict';

  var body = document.body;
  var travel = parseFloat(body.getAttribute('data-travel')) || 24;

  function clamp01(v) { return v > 0 ? (v < 1 ? v : 1) : 0; }

  function progress(top, height, viewport, offset) {
    return clamp01((offset - top) / Math.max(1, height - viewport));
  }

  function subjects() {
    return Array.prototype.slice.call(document.querySelectorAll('[data-scroll-subject]'));
  }

  function measure(el) {
    var rect = el.getBoundingClientRect();
    return { top: rect.top + window.scrollY, height: rect.height };
  }

  function applyLines(el, p) {
    el.querySelectorAll('[data-line]').forEach(function(line) {
      var i = parseInt(line.getAttribute('data-line'), 10);
      var n = parseInt(line.getAttribute('data-total'), 10);
      var local = n > 0 ? clamp01((p - i / n) * n) : 0;
      line.style.opacity = local;
      line.style.transform = 'translateY(' + (travel * (1 - local)) + 'px)';
    });
  }

  function applyPetals(el, p) {
    el.querySelectorAll('[data-petal]').forEach(function(petal) {
      var visible = p >= parseFloat(petal.getAttribute('data-threshold'));
      petal.style.opacity = visible ? 1 : 0;
      petal.style.transform = 'scale(' + (visible ? 1 : 0.6) + ')';
      petal.style.pointerEvents = visible ? 'auto' : 'none';
    });
  }

  function apply(el, p) {
    applyLines(el, p);
    applyPetals(el, p);
  }

  // Local driver: events mark dirty, one sample per animation frame.
  var pending = false;
  var geometry = new Map();

  function remeasure() {
    subjects().forEach(function(el) { geometry.set(el, measure(el)); });
  }

  function sample() {
    pending = false;
    var viewport = window.innerHeight;
    var offset = window.scrollY;
    geometry.forEach(function(g, el) {
      apply(el, progress(g.top, g.height, viewport, offset));
    });
  }

  function schedule() {
    if (!pending) {
      pending = true;
      window.requestAnimationFrame(sample);
    }
  }

  function onResize() { remeasure(); schedule(); }

  function startLocal() {
    remeasure();
    window.addEventListener('scroll', schedule, { passive: true });
    window.addEventListener('resize', onResize);
    window.addEventListener('pagehide', function() {
      window.removeEventListener('scroll', schedule);
      window.removeEventListener('resize', onResize);
    });
    schedule();
  }

  // Live driver: geometry and scroll go to the server, frames come back.
  function startLive(path) {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws;
    try { ws = new WebSocket(proto + location.host + path); } catch (e) { startLocal(); return; }
    var byId = {};
    var opened = false;

    function send(msg) { if (ws.readyState === 1) ws.send(JSON.stringify(msg)); }

    function measureAll() {
      subjects().forEach(function(el) {
        var id = el.getAttribute('data-scroll-subject');
        var g = measure(el);
        byId[id] = el;
        send({
          type: 'measure', subject: id, top: g.top, height: g.height,
          viewport: window.innerHeight,
          lines: el.querySelectorAll('[data-line]').length,
          petals: el.querySelectorAll('[data-petal]').length
        });
      });
    }

    function onScroll() {
      Object.keys(byId).forEach(function(id) { send({ type: 'scroll', subject: id, offset: window.scrollY }); });
    }

    function onLiveResize() {
      measureAll();
      Object.keys(byId).forEach(function(id) { send({ type: 'resize', subject: id, viewport: window.innerHeight }); });
      onScroll();
    }

    ws.onopen = function() {
      opened = true;
      measureAll();
      onScroll();
      window.addEventListener('scroll', onScroll, { passive: true });
      window.addEventListener('resize', onLiveResize);
    };
    ws.onmessage = function(ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (e) { return; }
      if (msg.type !== 'frame' || !byId[msg.subject]) return;
      window.requestAnimationFrame(function() { apply(byId[msg.subject], msg.progress); });
    };
    ws.onclose = function() {
      window.removeEventListener('scroll', onScroll);
      window.removeEventListener('resize', onLiveResize);
      startLocal();
    };
    ws.onerror = function() { if (!opened) ws.close(); };
    window.addEventListener('pagehide', function() { ws.close(); });
  }

  var live = body.getAttribute('data-live');
  if (live && 'WebSocket' in window) { startLive(live); } else { startLocal(); }

  // Missing images hide themselves instead of showing a broken icon.
  document.querySelectorAll('img[data-fallback]').forEach(function(img) {
    img.addEventListener('error', function() { img.setAttribute('data-broken', ''); });
  });

  // Hover bell.
  var bell = document.getElementById('hover-bell');
  if (bell) {
    document.querySelectorAll('[data-bell]').forEach(function(el) {
      el.addEventListener('mouseenter', function() {
        try {
          bell.currentTime = 0;
          var played = bell.play();
          if (played && played.catch) played.catch(function() {});
        } catch (e) {}
      });
    });
  }

  // Splash.
  var splash = document.getElementById('splash');
  if (splash) {
    var dismiss = function() { splash.classList.add('done'); };
    var video = splash.querySelector('video');
    if (video) {
      video.addEventListener('ended', dismiss);
      video.addEventListener('error', dismiss);
    }
    var skip = splash.querySelector('.splash-skip');
    if (skip) skip.addEventListener('click', dismiss);
  }

  // Soundtrack play/pause.
  document.querySelectorAll('.soundtrack-gate').forEach(function(gate) {
    var audio = gate.querySelector('audio');
    var toggle = gate.querySelector('.soundtrack-toggle');
    if (!audio || !toggle) return;
    var set = function(playing) { toggle.setAttribute('aria-pressed', playing ? 'true' : 'false'); };
    audio.addEventListener('pause', function() { set(false); });
    audio.addEventListener('playing', function() { set(true); });
    audio.addEventListener('error', function() { set(false); toggle.disabled = true; });
    toggle.addEventListener('click', function() {
      if (audio.paused) {
        var played = audio.play();
        if (played && played.catch) played.catch(function() { set(false); });
      } else {
        audio.pause();
      }
    });
  });
})();
`
