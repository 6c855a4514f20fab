package storage

import (
	"context"
	"fmt"

	"habernexus/internal/domain"
)

// defaultAuthors is the persona roster every fresh deployment starts with.
// One persona per specialty, matching the category directory below.
var defaultAuthors = []domain.PersonaAuthor{
	{
		Name:      "Dr. Ayşe Yılmaz",
		Slug:      "dr-ayse-yilmaz",
		AvatarURL: "https://i.pravatar.cc/300?img=1",
		Bio:       "Teknoloji ve bilim alanında 15 yıllık deneyime sahip araştırmacı ve yazar. Yapay zeka ve uzay teknolojileri üzerine çalışmalar yürütüyor.",
		Specialty: "Teknoloji & Bilim",
	},
	{
		Name:      "Mehmet Kaya",
		Slug:      "mehmet-kaya",
		AvatarURL: "https://i.pravatar.cc/300?img=12",
		Bio:       "Uluslararası ilişkiler uzmanı. Dünya siyaseti ve diplomasi konularında 20 yıldır habercilik yapıyor.",
		Specialty: "Global Siyaset",
	},
	{
		Name:      "Zeynep Demir",
		Slug:      "zeynep-demir",
		AvatarURL: "https://i.pravatar.cc/300?img=5",
		Bio:       "Ekonomist ve finans analisti. Piyasalar, kripto para ve makroekonomi üzerine yazıyor.",
		Specialty: "Ekonomi & Finans",
	},
	{
		Name:      "Dr. Elif Özkan",
		Slug:      "dr-elif-ozkan",
		AvatarURL: "https://i.pravatar.cc/300?img=9",
		Bio:       "Halk sağlığı uzmanı hekim. Sağlıklı yaşam, beslenme ve tıbbi gelişmeler hakkında bilgilendirici içerikler üretiyor.",
		Specialty: "Sağlık & Yaşam",
	},
	{
		Name:      "Can Arslan",
		Slug:      "can-arslan",
		AvatarURL: "https://i.pravatar.cc/300?img=15",
		Bio:       "Sanat eleştirmeni ve kültür yazarı. Sinema, müzik ve edebiyat dünyasını yakından takip ediyor.",
		Specialty: "Kültür & Sanat",
	},
	{
		Name:      "Burak Şahin",
		Slug:      "burak-sahin",
		AvatarURL: "https://i.pravatar.cc/300?img=18",
		Bio:       "Spor muhabiri ve yorumcu. Futbol başta olmak üzere tüm spor dallarında güncel gelişmeleri aktarıyor.",
		Specialty: "Spor",
	},
	{
		Name:      "Selin Aydın",
		Slug:      "selin-aydin",
		AvatarURL: "https://i.pravatar.cc/300?img=23",
		Bio:       "Genel haber editörü. Gündemin nabzını tutan, tarafsız ve kapsamlı haberler hazırlıyor.",
		Specialty: "Genel Gündem",
	},
}

// defaultCategories mirrors the specialties above; slugs are what the
// classifier resolves against.
var defaultCategories = []domain.Category{
	{Name: "Teknoloji & Bilim", Slug: "teknoloji-bilim", Description: "Yapay zeka, uzay, gadget'lar ve bilimsel gelişmeler"},
	{Name: "Global Siyaset", Slug: "global-siyaset", Description: "Uluslararası ilişkiler ve dünya politikası"},
	{Name: "Ekonomi & Finans", Slug: "ekonomi-finans", Description: "Piyasalar, borsa, kripto para ve ekonomik analizler"},
	{Name: "Sağlık & Yaşam", Slug: "saglik-yasam", Description: "Sağlık, wellness, beslenme ve yaşam tarzı"},
	{Name: "Kültür & Sanat", Slug: "kultur-sanat", Description: "Sinema, müzik, edebiyat ve görsel sanatlar"},
	{Name: "Spor", Slug: "spor", Description: "Futbol, basketbol ve diğer spor dalları"},
	{Name: "Genel Gündem", Slug: "genel-gundem", Description: "Güncel haberler ve genel konular"},
}

// Seed inserts the default persona and category directories when the tables
// are empty. Existing rows are left untouched.
func (r *PostgresRepository) Seed(ctx context.Context) error {
	empty, err := r.tableEmpty(ctx, "categories")
	if err != nil {
		return err
	}
	if empty {
		for _, c := range defaultCategories {
			query, args, err := r.sb.Insert("categories").
				Columns("name", "slug", "description").
				Values(c.Name, c.Slug, c.Description).
				ToSql()
			if err != nil {
				return fmt.Errorf("build category seed: %w", err)
			}
			if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed category %s: %w", c.Slug, err)
			}
		}
	}

	empty, err = r.tableEmpty(ctx, "authors")
	if err != nil {
		return err
	}
	if empty {
		for _, a := range defaultAuthors {
			query, args, err := r.sb.Insert("authors").
				Columns("name", "slug", "avatar_url", "bio", "specialty").
				Values(a.Name, a.Slug, a.AvatarURL, a.Bio, a.Specialty).
				ToSql()
			if err != nil {
				return fmt.Errorf("build author seed: %w", err)
			}
			if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed author %s: %w", a.Slug, err)
			}
		}
	}

	return nil
}

func (r *PostgresRepository) tableEmpty(ctx context.Context, table string) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return false, fmt.Errorf("build count query: %w", err)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count == 0, nil
}
