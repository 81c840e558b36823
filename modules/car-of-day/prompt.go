package carofday

import (
	"fmt"
	"strings"
)

// PlaceholderDisplayName - 차량 정보가 하나도 없을 때 쓰는 이름
const PlaceholderDisplayName = "This Beauty"

// PromptFacts - composer 입력 (순수 값, 사이드 이펙트 없음)
type PromptFacts struct {
	Vehicle      VehicleInfo
	Owner        OwnerInfo
	DisplayName  string
	BusinessName string
	Location     string

	// 차주 사진이 함께 전달됐는지 (likeness 보존 지시 분기)
	HasOwnerPhoto bool

	// 마스코트 레퍼런스 존재 여부
	HasMascot bool

	// 로고 이미지 개수
	LogoCount int
}

// DeriveDisplayName - 차량 표시 이름 결정
// 닉네임이 있으면 따옴표로 감싸서 우선 사용, 없으면 연식+브랜드+모델 조합,
// 그것도 없으면 placeholder (빈 문자열은 절대 반환하지 않음)
func DeriveDisplayName(v VehicleInfo) string {
	if nickname := strings.TrimSpace(v.Nickname); nickname != "" {
		return fmt.Sprintf("%q", nickname)
	}

	parts := []string{}
	for _, p := range []string{v.Year, v.Make, v.Model} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	return PlaceholderDisplayName
}

// vehicleDescription - 프롬프트에 넣을 차량 설명 문장
func vehicleDescription(facts PromptFacts) string {
	desc := fmt.Sprintf("the vehicle in the photo (%s)", facts.DisplayName)
	if color := strings.TrimSpace(facts.Vehicle.Color); color != "" {
		desc = fmt.Sprintf("%s, %s colored", desc, color)
	}
	return desc
}

// ownerLikenessBlock - 차주 사진이 있을 때만 붙는 likeness 보존 지시
func ownerLikenessBlock(facts PromptFacts, role string) string {
	if !facts.HasOwnerPhoto {
		return ""
	}

	ownerName := strings.TrimSpace(facts.Owner.Name)
	if ownerName == "" {
		ownerName = "the owner"
	}

	return fmt.Sprintf(`
OWNER LIKENESS:
- The SECOND image is a photo of %s, the vehicle's owner
- Include them as %s
- Preserve their facial likeness faithfully - recognizable but flattering`, ownerName, role)
}

// brandingBlock - 로고/마스코트가 있을 때 붙는 브랜딩 지시
func brandingBlock(facts PromptFacts) string {
	lines := []string{}
	if facts.LogoCount > 0 {
		lines = append(lines, fmt.Sprintf("- Work the %s logo into the composition naturally (small, like a sponsor mark)", facts.BusinessName))
	}
	if facts.HasMascot {
		lines = append(lines, "- The shop mascot may appear as a small background cameo")
	}
	if len(lines) == 0 {
		return ""
	}
	return "\nBRANDING:\n" + strings.Join(lines, "\n")
}

// composeOfficial - 딜러십 화보 스타일 프롬프트
func composeOfficial(facts PromptFacts) string {
	return fmt.Sprintf(`You are given a customer's car photo.

TASK: Recreate %s as a glossy "Car of the Day" feature photo for %s, an auto service business in %s.

STYLE:
- Professional automotive magazine photography
- Golden hour lighting, dramatic but clean
- Polished paint with crisp reflections, showroom-quality detailing
- Subtle "CAR OF THE DAY" banner text across the top

CRITICAL REQUIREMENTS:
- The car MUST stay recognizable as the exact same vehicle: same body, trim, wheels and color
- Do not change the model year or body style
- Keep the composition suitable for a social media post%s

OUTPUT: Generate ONLY the image, no text or explanations.`,
		vehicleDescription(facts), facts.BusinessName, facts.Location,
		brandingBlock(facts))
}

// composeComic - 레트로 코믹북 커버 스타일 프롬프트
func composeComic(facts PromptFacts) string {
	return fmt.Sprintf(`You are given a customer's car photo.

TASK: Draw %s as the hero of a vintage comic book cover titled "%s".

STYLE:
- 1960s comic book art: bold ink outlines, halftone dots, saturated primary colors
- Dynamic action pose, speed lines, dramatic sky
- Comic masthead with the title and a fake issue number
- A burst bubble crediting %s%s%s

OUTPUT: Generate ONLY the image, no text or explanations.`,
		vehicleDescription(facts), facts.DisplayName, facts.BusinessName,
		ownerLikenessBlock(facts, "the comic's heroic driver, drawn in the same ink style"),
		brandingBlock(facts))
}

// composeActionFigure - 액션 피규어 패키지 스타일 프롬프트
func composeActionFigure(facts PromptFacts) string {
	return fmt.Sprintf(`You are given a customer's car photo.

TASK: Present %s as a collectible die-cast toy in retail blister packaging.

STYLE:
- Toy photography: the car rendered as a detailed 1:24 scale model inside a clear plastic blister
- Cardboard backing card with playful retro graphics and the name "%s"
- Price sticker, "COLLECTOR'S EDITION" badge, small %s logo as the toy brand%s%s

CRITICAL REQUIREMENTS:
- The toy car must match the real vehicle's color, trim and wheels

OUTPUT: Generate ONLY the image, no text or explanations.`,
		vehicleDescription(facts), facts.DisplayName, facts.BusinessName,
		ownerLikenessBlock(facts, "a matching driver mini-figure sealed in the same package"),
		brandingBlock(facts))
}

// composeMoviePoster - 블록버스터 포스터 스타일 프롬프트
func composeMoviePoster(facts PromptFacts) string {
	return fmt.Sprintf(`You are given a customer's car photo.

TASK: Design a blockbuster movie poster starring %s.

STYLE:
- Cinematic one-sheet poster: dramatic low angle, lens flare, moody color grade
- Movie title derived from "%s", large stylized typography
- Billing block at the bottom crediting "A %s PRODUCTION"
- Tagline about the open road%s%s

OUTPUT: Generate ONLY the image, no text or explanations.`,
		vehicleDescription(facts), facts.DisplayName, strings.ToUpper(facts.BusinessName),
		ownerLikenessBlock(facts, "the movie's lead, posed beside the car"),
		brandingBlock(facts))
}

// BuildCaption - 포스팅용 캡션 생성 (같은 입력이면 항상 같은 출력)
func BuildCaption(variantTag, displayName, ownerHandle, businessName string) string {
	handlePart := ""
	if h := strings.TrimSpace(ownerHandle); h != "" {
		handlePart = fmt.Sprintf(" Shout-out to @%s!", strings.TrimPrefix(h, "@"))
	}

	switch variantTag {
	case VariantComic:
		return fmt.Sprintf("💥 %s takes over the comics!%s Brought to you by %s.", displayName, handlePart, businessName)
	case VariantActionFigure:
		return fmt.Sprintf("🧸 Collector's edition: the %s action figure!%s Only at %s.", displayName, handlePart, businessName)
	case VariantMoviePoster:
		return fmt.Sprintf("🎬 Now showing: %s!%s A %s production.", displayName, handlePart, businessName)
	default:
		return fmt.Sprintf("🚗 Car of the Day: %s!%s Spotted at %s.", displayName, handlePart, businessName)
	}
}
