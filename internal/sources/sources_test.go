package sources_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/sources"
)

const pciConcursosPage = `<!DOCTYPE html>
<html><body>
<div class="ca">
  <a href="/concursos/prefeitura-itaperuna">Prefeitura Municipal de Itaperuna</a>
  <img data-src="/logos/itaperuna.png" src="/placeholder.gif">
  <div class="cc">Itaperuna/RJ</div>
  <div class="cd">2 vagas / R$ 3.500,00 CR</div>
  <div class="cb">Professor / Nível Superior</div>
  <div class="ce">Até 15/01/2026</div>
</div>
<div class="ca">
  <a href="https://www.pciconcursos.com.br/concursos/camara-niteroi">Câmara de Niterói - RJ</a>
  <div class="cc">Niterói/RJ</div>
  <div class="cd">A combinar</div>
  <div class="cb">Vários Cargos</div>
  <div class="ce">Verificar edital</div>
</div>
<div class="ca">
  <a href="/concursos/sem-titulo"></a>
</div>
</body></html>`

func TestPCIConcursos_ParsePage(t *testing.T) {
	t.Parallel()

	src := sources.NewPCIConcursos()
	listings, err := src.ParsePage("https://www.pciconcursos.com.br/concursos/", pciConcursosPage)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	require.Equal(t, "Prefeitura Municipal de Itaperuna", first.Title)
	require.Equal(t, "Prefeitura Municipal de Itaperuna", first.Organization)
	require.Equal(t, "https://www.pciconcursos.com.br/concursos/prefeitura-itaperuna", first.Link)
	require.Equal(t, "https://www.pciconcursos.com.br/logos/itaperuna.png", first.LogoURL)
	require.Equal(t, "Itaperuna/RJ", first.RawLocationText)
	require.Equal(t, "2 vagas / R$ 3.500,00 CR", first.RawDetailsText)
	require.Equal(t, "Professor / Nível Superior", first.RawRolesText)
	require.Equal(t, "Até 15/01/2026", first.RawDeadlineText)
	require.Equal(t, "pciconcursos", first.Source)

	second := listings[1]
	require.Equal(t, "https://www.pciconcursos.com.br/concursos/camara-niteroi", second.Link)
	require.Empty(t, second.LogoURL)
}

func TestPCIConcursos_PageURL(t *testing.T) {
	t.Parallel()

	src := sources.NewPCIConcursosAt("https://example.test/")
	require.Equal(t, "https://example.test/concursos/", src.PageURL(1))
	require.Equal(t, "https://example.test/concursos/?pagina=3", src.PageURL(3))
}

const concursosNoBrasilPage = `<!DOCTYPE html>
<html><body>
<table>
<tbody>
<tr data-uf="SC" data-deadline="De 02/01/2026 a 15/01/2026">
  <td><a href="/concursos/prefeitura-blumenau/">Prefeitura de Blumenau - SC</a></td>
  <td>150 vagas / R$ 2.100,00</td>
  <td>Fundamental, Médio, Superior</td>
</tr>
<tr>
  <td>linha sem link</td>
</tr>
</tbody>
</table>
</body></html>`

func TestConcursosNoBrasil_ParsePage(t *testing.T) {
	t.Parallel()

	src := sources.NewConcursosNoBrasil()
	listings, err := src.ParsePage("https://concursosnobrasil.com/concursos/", concursosNoBrasilPage)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	require.Equal(t, "Prefeitura de Blumenau - SC", got.Title)
	require.Equal(t, "https://concursosnobrasil.com/concursos/prefeitura-blumenau/", got.Link)
	require.Equal(t, "SC", got.RawLocationText)
	require.Equal(t, "150 vagas / R$ 2.100,00", got.RawDetailsText)
	require.Equal(t, "Fundamental, Médio, Superior", got.RawRolesText)
	require.Equal(t, "De 02/01/2026 a 15/01/2026", got.RawDeadlineText)
	require.Equal(t, "concursosnobrasil", got.Source)
}

const pciPrevistosPage = `<!DOCTYPE html>
<html><body>
<div class="ca">
  <a href="/previstos/tj-pa">Tribunal de Justiça do Pará</a>
  <div class="cc">Belém/PA</div>
  <div class="cp" data-date="2026-08-20"></div>
</div>
</body></html>`

func TestPCIPrevistos_ParsePage(t *testing.T) {
	t.Parallel()

	src := sources.NewPCIPrevistos()
	listings, err := src.ParsePage("https://www.pciconcursos.com.br/previstos/", pciPrevistosPage)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	require.Equal(t, "Tribunal de Justiça do Pará", got.Title)
	require.Equal(t, "https://www.pciconcursos.com.br/previstos/tj-pa", got.Link)
	require.Equal(t, "Belém/PA", got.RawLocationText)
	require.Equal(t, "2026-08-20", got.PublishedAt)
	require.Equal(t, "pciconcursos-previstos", got.Source)
}

const pciNoticiasPage = `<!DOCTYPE html>
<html><body>
<ul class="noticias">
<li>
  <a href="/noticias/concurso-inss-2026">Concurso INSS tem edital confirmado</a>
  <time datetime="2026-08-28T10:00:00-03:00">28/08/2026</time>
</li>
<li>
  <a href="">sem link</a>
</li>
</ul>
</body></html>`

func TestPCINoticias_ParsePage(t *testing.T) {
	t.Parallel()

	src := sources.NewPCINoticias()
	listings, err := src.ParsePage("https://www.pciconcursos.com.br/noticias/", pciNoticiasPage)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	require.Equal(t, "Concurso INSS tem edital confirmado", got.Title)
	require.Equal(t, "https://www.pciconcursos.com.br/noticias/concurso-inss-2026", got.Link)
	require.Equal(t, "2026-08-28T10:00:00-03:00", got.PublishedAt)
	require.Equal(t, "pciconcursos-noticias", got.Source)
}

const jcNoticiasPage = `<!DOCTYPE html>
<html><body>
<article>
  <a href="/noticia/concursos/edital-pm-sp"><h2>PM SP publica edital</h2></a>
  <time datetime="2026-08-27"></time>
</article>
<article>
  <a href="/noticia/concursos/sem-headline">Anchor como título</a>
</article>
</body></html>`

func TestJCNoticias_ParsePage(t *testing.T) {
	t.Parallel()

	src := sources.NewJCNoticias()
	listings, err := src.ParsePage("https://jcconcursos.com.br/noticia/concursos", jcNoticiasPage)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	require.Equal(t, "PM SP publica edital", listings[0].Title)
	require.Equal(t, "https://jcconcursos.com.br/noticia/concursos/edital-pm-sp", listings[0].Link)
	require.Equal(t, "2026-08-27", listings[0].PublishedAt)

	require.Equal(t, "Anchor como título", listings[1].Title)
}

func TestForContentType(t *testing.T) {
	t.Parallel()

	for _, ct := range []domain.ContentType{domain.ContentOpen, domain.ContentPredicted, domain.ContentNews} {
		srcs := sources.ForContentType(ct)
		require.NotEmpty(t, srcs)
		for _, s := range srcs {
			require.Equal(t, ct, s.ContentType())
			require.NotEmpty(t, s.Name())
			require.NotEmpty(t, s.PageURL(1))
		}
	}
	require.Empty(t, sources.ForContentType(domain.ContentType("unknown")))
}
