// services/faker.go
package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"boacompra-loader/models"
	"boacompra-loader/utils"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	firstNames = []string{
		"Ana", "Maria", "Beatriz", "Júlia", "Larissa", "Fernanda", "Camila", "Gabriela", "Letícia", "Mariana",
		"Isabela", "Luana", "Patrícia", "Aline", "Bruna", "Carolina", "Daniela", "Helena", "Vitória", "Sofia",
		"João", "Pedro", "Lucas", "Gabriel", "Rafael", "Mateus", "Gustavo", "Felipe", "Bruno", "Thiago",
		"Rodrigo", "Leonardo", "Eduardo", "Daniel", "Vinícius", "André", "Marcelo", "Ricardo", "Caio", "Otávio",
	}
	lastNames = []string{
		"Silva", "Santos", "Oliveira", "Souza", "Rodrigues", "Ferreira", "Alves", "Pereira", "Lima", "Gomes",
		"Costa", "Ribeiro", "Martins", "Carvalho", "Almeida", "Lopes", "Soares", "Fernandes", "Vieira", "Barbosa",
		"Rocha", "Dias", "Nascimento", "Andrade", "Moreira", "Nunes", "Marques", "Machado", "Mendes", "Freitas",
		"Cardoso", "Ramos", "Gonçalves", "Santana", "Teixeira", "Araújo", "Pinto", "Cavalcanti", "Monteiro", "Correia",
	}
	streetPrefixes   = []string{"Rua", "Avenida", "Travessa", "Alameda", "Praça", "Rodovia", "Estrada", "Largo", "Viela"}
	districtSuffixes = []string{
		"do Sul", "do Norte", "de Minas", "do Campo", "Grande", "da Serra", "do Oeste", "de Goiás", "Paulista",
		"da Mata", "Alegre", "da Praia", "das Flores", "das Pedras", "dos Dourados", "do Amparo", "da Prata", "Verde",
	}
)

// Faker produces the pt_BR flavoured values of the generators. Free text
// comes from gofakeit; names, addresses and documents from local pools.
type Faker struct {
	fake *gofakeit.Faker
	rng  *rand.Rand
}

func NewFaker(seed int64) *Faker {
	return &Faker{
		fake: gofakeit.New(seed),
		rng:  rand.New(rand.NewSource(seed ^ 0x5eed)),
	}
}

func (f *Faker) pick(pool []string) string {
	return pool[f.rng.Intn(len(pool))]
}

func (f *Faker) digits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + f.rng.Intn(10)))
	}
	return b.String()
}

func (f *Faker) PersonName() string {
	if f.rng.Intn(3) == 0 {
		return fmt.Sprintf("%s %s %s", f.pick(firstNames), f.pick(lastNames), f.pick(lastNames))
	}
	return fmt.Sprintf("%s %s", f.pick(firstNames), f.pick(lastNames))
}

// CPF returns 11 unformatted digits with valid check digits.
func (f *Faker) CPF() string {
	for {
		prefix := make([]int, 9, 11)
		same := true
		for i := range prefix {
			prefix[i] = f.rng.Intn(10)
			if prefix[i] != prefix[0] {
				same = false
			}
		}
		if same {
			continue
		}
		prefix = append(prefix, utils.CPFCheckDigit(prefix))
		prefix = append(prefix, utils.CPFCheckDigit(prefix))
		var b strings.Builder
		for _, d := range prefix {
			b.WriteByte(byte('0' + d))
		}
		return b.String()
	}
}

// BirthDate is a date for someone aged between minAge and maxAge on now.
func (f *Faker) BirthDate(now time.Time, minAge, maxAge int) time.Time {
	today := utils.BeginningOfDay(now)
	earliest := today.AddDate(-(maxAge + 1), 0, 1)
	latest := today.AddDate(-minAge, 0, 0)
	return f.DateBetween(earliest, latest)
}

// DateBetween is a uniformly drawn day in [start, end].
func (f *Faker) DateBetween(start, end time.Time) time.Time {
	start, end = utils.BeginningOfDay(start), utils.BeginningOfDay(end)
	days := utils.DaysBetween(start, end)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, f.rng.Intn(days+1))
}

func (f *Faker) Street() string {
	return fmt.Sprintf("%s %s %s", f.pick(streetPrefixes), f.pick(firstNames), f.pick(lastNames))
}

func (f *Faker) HouseNumber() string {
	return strconv.Itoa(f.rng.Intn(9999) + 1)
}

func (f *Faker) District() string {
	return f.pick(districtSuffixes)
}

// PostalCode is an unformatted 8 digit CEP.
func (f *Faker) PostalCode() string {
	return fmt.Sprintf("%d%s", f.rng.Intn(9)+1, f.digits(7))
}

func (f *Faker) Email() string {
	return strings.ToLower(f.fake.Email())
}

// AreaCode is a DDD in [11, 99].
func (f *Faker) AreaCode() int {
	return f.rng.Intn(89) + 11
}

// PhoneNumber is an 8 digit local number.
func (f *Faker) PhoneNumber() string {
	return f.digits(8)
}

func (f *Faker) ContactType() models.ContactType {
	return models.ContactTypes[f.rng.Intn(len(models.ContactTypes))]
}

func (f *Faker) ProductName() string {
	return fmt.Sprintf("%s %s %s", f.fake.ProductName(), f.fake.Adjective(), f.fake.Noun())
}

func (f *Faker) Description(maxChars int) string {
	text := f.fake.Paragraph(1, f.rng.Intn(4)+2, 12, " ")
	return utils.Truncate(text, maxChars)
}

func (f *Faker) Note(maxChars int) string {
	return utils.Truncate(f.fake.Sentence(f.rng.Intn(10)+5), maxChars)
}
