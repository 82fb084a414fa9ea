package sqlinline

// donorRowsCTE is shared by the overview queries. $1 is the search pattern,
// already wrapped in % and escaped; an empty string disables the filter.
const donorRowsCTE = `
with donor_rows as (
  select
    o.rodne_cislo,
    o.first_name,
    o.last_name,
    o.address,
    o.city,
    o.postal_code,
    o.kod_pojistovny,
    o.donation_count_fm,
    o.donation_count_fm_bubenik,
    o.donation_count_trinec,
    o.donation_count_manual,
    o.donation_count_total,
    o.awarded_medal_br,
    o.awarded_medal_st,
    o.awarded_medal_zl,
    o.awarded_medal_kr3,
    o.awarded_medal_kr2,
    o.awarded_medal_kr1,
    o.awarded_medal_plk,
    case
      when o.awarded_medal_plk then 7
      when o.awarded_medal_kr1 then 6
      when o.awarded_medal_kr2 then 5
      when o.awarded_medal_kr3 then 4
      when o.awarded_medal_zl then 3
      when o.awarded_medal_st then 2
      when o.awarded_medal_br then 1
      else 0
    end as last_award_rank,
    coalesce(n.note, '') as note
  from donors_overview o
  left join notes n on n.rodne_cislo = o.rodne_cislo
)`

// QOverviewCounts returns the total and the filtered row count.
const QOverviewCounts = `--sql 3f0c9a7e-6d41-4b1e-9a53-2c8e71d4b0f6` + donorRowsCTE + `
select
  count(*)::int as total,
  count(*) filter (
    where $1::text = ''
       or rodne_cislo ilike $1::text
       or first_name ilike $1::text
       or last_name ilike $1::text
       or address ilike $1::text
       or city ilike $1::text
       or postal_code ilike $1::text
       or kod_pojistovny ilike $1::text
       or note ilike $1::text
  )::int as filtered
from donor_rows;
`

// QOverviewPage selects one page of donors. The %s placeholder takes the
// ORDER BY list built from quoted identifiers. A null $2 means no limit.
const QOverviewPage = `--sql 8b2d4e61-0c7f-4a93-b5e8-d1f60a2c947b` + donorRowsCTE + `
select
  rodne_cislo,
  first_name,
  last_name,
  address,
  city,
  postal_code,
  kod_pojistovny,
  donation_count_fm,
  donation_count_fm_bubenik,
  donation_count_trinec,
  donation_count_manual,
  donation_count_total,
  awarded_medal_br,
  awarded_medal_st,
  awarded_medal_zl,
  awarded_medal_kr3,
  awarded_medal_kr2,
  awarded_medal_kr1,
  awarded_medal_plk,
  note
from donor_rows
where $1::text = ''
   or rodne_cislo ilike $1::text
   or first_name ilike $1::text
   or last_name ilike $1::text
   or address ilike $1::text
   or city ilike $1::text
   or postal_code ilike $1::text
   or kod_pojistovny ilike $1::text
   or note ilike $1::text
order by %s
limit $2::int offset $3::int;
`

// QOverviewByRC selects a single donor.
const QOverviewByRC = `--sql c71e5b08-93a2-4f6d-8e0b-5a4f2d19c3e7
select
  o.rodne_cislo,
  o.first_name,
  o.last_name,
  o.address,
  o.city,
  o.postal_code,
  o.kod_pojistovny,
  o.donation_count_fm,
  o.donation_count_fm_bubenik,
  o.donation_count_trinec,
  o.donation_count_manual,
  o.donation_count_total,
  o.awarded_medal_br,
  o.awarded_medal_st,
  o.awarded_medal_zl,
  o.awarded_medal_kr3,
  o.awarded_medal_kr2,
  o.awarded_medal_kr1,
  o.awarded_medal_plk,
  coalesce(n.note, '') as note
from donors_overview o
left join notes n on n.rodne_cislo = o.rodne_cislo
where o.rodne_cislo = $1::text
limit 1;
`

// QListOverrides lists which columns are set by hand per donor.
const QListOverrides = `--sql 5e9a7c23-1b84-4f0d-a6c2-7d3e8f91b054
select
  trim(rodne_cislo) as rodne_cislo,
  coalesce(first_name, '') <> '' as first_name,
  coalesce(last_name, '') <> '' as last_name,
  coalesce(address, '') <> '' as address,
  coalesce(city, '') <> '' as city,
  coalesce(postal_code, '') <> '' as postal_code,
  coalesce(kod_pojistovny, '') <> '' as kod_pojistovny
from donors_override
order by rodne_cislo;
`
