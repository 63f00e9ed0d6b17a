// seed carga los catálogos iniciales (clasificaciones de defecto y empresas) desde archivos CSV
// exportados del sistema anterior, que suelen venir en ISO-8859-1.
//
// Uso: go run ./cmd/seed -defects tipos_manutencao.csv -companies empresas.csv [-charset latin1]
//
// Formato (separador ';', primera fila de encabezado):
//
//	defects:   codigo;descricao[;categoria]
//	companies: nome;cnpj;regiao[;contato;telefone;email]
//
// Las filas duplicadas se informan y se saltan.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tacom-api/internal/application/catalog"
	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/application/usecase"
	"github.com/jhoicas/tacom-api/internal/bootstrap"
	"github.com/jhoicas/tacom-api/internal/domain"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
	"github.com/jhoicas/tacom-api/internal/infrastructure/cache"
	"github.com/jhoicas/tacom-api/pkg/config"
	"github.com/jhoicas/tacom-api/pkg/logger"
)

func main() {
	defectsPath := flag.String("defects", "", "CSV de clasificaciones de defecto")
	companiesPath := flag.String("companies", "", "CSV de empresas")
	charset := flag.String("charset", "latin1", "codificación de los archivos: latin1 | utf8")
	flag.Parse()

	if *defectsPath == "" && *companiesPath == "" {
		fmt.Fprintln(os.Stderr, "indique -defects y/o -companies")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	// El seed no comparte caché con la API: las altas invalidan solo su caché local.
	local := cache.NewMemoryCache(bootstrap.CacheTTL(cfg), 0)

	if *defectsPath != "" {
		rows, err := readCSV(*defectsPath, *charset)
		if err != nil {
			log.Fatal().Err(err).Str("file", *defectsPath).Msg("leer clasificaciones")
		}
		uc := usecase.NewDefectTypeUseCase(catalog.NewDefects(store.Defects, local, bootstrap.CacheTTL(cfg), log))
		created, skipped := seedDefects(ctx, uc, rows, log)
		log.Info().Int("created", created).Int("skipped", skipped).Msg("clasificaciones cargadas")
	}

	if *companiesPath != "" {
		rows, err := readCSV(*companiesPath, *charset)
		if err != nil {
			log.Fatal().Err(err).Str("file", *companiesPath).Msg("leer empresas")
		}
		// La política solo se usa para marcar la casa en las respuestas; no exige configuración completa.
		policy := engine.Policy{HomeCompanyID: cfg.Movement.HomeCompanyID, HomeFamily: cfg.Movement.HomeFamilyIDs}
		uc := usecase.NewCompanyUseCase(store.Companies, nil, policy)
		created, skipped := seedCompanies(ctx, uc, rows, log)
		log.Info().Int("created", created).Int("skipped", skipped).Msg("empresas cargadas")
	}
}

type defectCreator interface {
	Create(ctx context.Context, in dto.CreateDefectTypeRequest) (*dto.DefectTypeResponse, error)
}

type companyCreator interface {
	Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
}

func seedDefects(ctx context.Context, uc defectCreator, rows [][]string, log *logger.Logger) (created, skipped int) {
	for i, r := range rows {
		in := dto.CreateDefectTypeRequest{Code: col(r, 0), Description: col(r, 1), Category: strings.ToLower(col(r, 2))}
		if _, err := uc.Create(ctx, in); err != nil {
			skipped++
			logSkip(log, i, in.Code, err)
			continue
		}
		created++
	}
	return created, skipped
}

func seedCompanies(ctx context.Context, uc companyCreator, rows [][]string, log *logger.Logger) (created, skipped int) {
	for i, r := range rows {
		in := dto.CreateCompanyRequest{
			Name: col(r, 0), TaxID: col(r, 1), Region: col(r, 2),
			Contact: col(r, 3), Phone: col(r, 4), Email: col(r, 5),
		}
		if _, err := uc.Create(ctx, in); err != nil {
			skipped++
			logSkip(log, i, in.Name, err)
			continue
		}
		created++
	}
	return created, skipped
}

func logSkip(log *logger.Logger, i int, key string, err error) {
	ev := log.Warn()
	if !errors.Is(err, domain.ErrDuplicate) && !errors.Is(err, domain.ErrInvalidInput) {
		ev = log.Error()
	}
	// +2: encabezado y numeración desde 1
	ev.Err(err).Int("line", i+2).Str("key", key).Msg("fila omitida")
}

// readCSV lee el archivo con separador ';' y descarta el encabezado.
func readCSV(path, charset string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSV(f, charset)
}

func parseCSV(r io.Reader, charset string) ([][]string, error) {
	switch strings.ToLower(charset) {
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "cp1252", "windows-1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case "utf8", "utf-8", "":
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", charset)
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	out := rows[1:]
	// Filas vacías al final del export.
	for len(out) > 0 && strings.TrimSpace(strings.Join(out[len(out)-1], "")) == "" {
		out = out[:len(out)-1]
	}
	return out, nil
}

func col(r []string, i int) string {
	if i < len(r) {
		return strings.TrimSpace(r[i])
	}
	return ""
}
